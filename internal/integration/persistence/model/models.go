package model

// AllModels lists every table the service owns, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&CategoryModel{},
		&ExpenseModel{},
		&BudgetModel{},
		&EmailQueueModel{},
	}
}
