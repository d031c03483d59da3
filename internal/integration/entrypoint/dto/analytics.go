package dto

import (
	"github.com/expense-tracker/backend/internal/domain/analytics"
)

// MonthlyExpenseResponse is one month of spending.
type MonthlyExpenseResponse struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

// CategoryExpenseResponse is the spending of one category.
type CategoryExpenseResponse struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        string `json:"total"`
}

// RecentExpenseResponse is an expense with its category name resolved.
type RecentExpenseResponse struct {
	ExpenseResponse
	CategoryName string `json:"category_name"`
}

// BudgetVsActualResponse compares one budget with the month's spending.
type BudgetVsActualResponse struct {
	BudgetID     string `json:"budget_id"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Month        string `json:"month"`
	Budget       string `json:"budget"`
	Spent        string `json:"spent"`
	Remaining    string `json:"remaining"`
	Overspent    string `json:"overspent"`
}

// MonthlyExpensesResponse is the body of GET /analytics/monthly-expenses.
type MonthlyExpensesResponse struct {
	Months []MonthlyExpenseResponse `json:"months"`
}

// CategoryExpensesResponse is the body of GET /analytics/category-expenses.
type CategoryExpensesResponse struct {
	Categories []CategoryExpenseResponse `json:"categories"`
}

// RecentExpensesResponse is the body of GET /analytics/recent-expenses.
type RecentExpensesResponse struct {
	Expenses []RecentExpenseResponse `json:"expenses"`
}

// BudgetsVsActualResponse is the body of GET /analytics/budget-vs-actual.
type BudgetsVsActualResponse struct {
	Month string                   `json:"month"`
	Lines []BudgetVsActualResponse `json:"lines"`
}

// ToMonthlyExpensesResponse converts monthly totals.
func ToMonthlyExpensesResponse(months []analytics.MonthTotal) MonthlyExpensesResponse {
	items := make([]MonthlyExpenseResponse, len(months))
	for i, m := range months {
		items[i] = MonthlyExpenseResponse{Month: m.Month, Total: Money(m.Total)}
	}
	return MonthlyExpensesResponse{Months: items}
}

// ToCategoryExpensesResponse converts category totals.
func ToCategoryExpensesResponse(totals []analytics.CategoryTotal) CategoryExpensesResponse {
	items := make([]CategoryExpenseResponse, len(totals))
	for i, t := range totals {
		items[i] = CategoryExpenseResponse{
			CategoryID:   t.CategoryID.String(),
			CategoryName: t.CategoryName,
			Total:        Money(t.Total),
		}
	}
	return CategoryExpensesResponse{Categories: items}
}

// ToRecentExpensesResponse converts recent activity.
func ToRecentExpensesResponse(recent []analytics.RecentExpense) RecentExpensesResponse {
	items := make([]RecentExpenseResponse, len(recent))
	for i, r := range recent {
		items[i] = RecentExpenseResponse{
			ExpenseResponse: ToExpenseResponse(r.Expense),
			CategoryName:    r.CategoryName,
		}
	}
	return RecentExpensesResponse{Expenses: items}
}

// ToBudgetsVsActualResponse converts the budget comparison of a month.
func ToBudgetsVsActualResponse(month string, lines []analytics.BudgetLine) BudgetsVsActualResponse {
	items := make([]BudgetVsActualResponse, len(lines))
	for i, l := range lines {
		items[i] = BudgetVsActualResponse{
			BudgetID:     l.BudgetID.String(),
			CategoryID:   l.CategoryID.String(),
			CategoryName: l.CategoryName,
			Month:        Month(l.Month),
			Budget:       Money(l.Budget),
			Spent:        Money(l.Spent),
			Remaining:    Money(l.Remaining),
			Overspent:    Money(l.Overspent),
		}
	}
	return BudgetsVsActualResponse{Month: month, Lines: items}
}
