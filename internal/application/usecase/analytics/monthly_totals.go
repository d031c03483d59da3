package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/analytics"
)

// MonthlyTotalsInput represents the input for the monthly totals view.
type MonthlyTotalsInput struct {
	UserID uuid.UUID
}

// MonthlyTotalsOutput holds one total per month with spending, oldest first.
type MonthlyTotalsOutput struct {
	Months []analytics.MonthTotal
}

// MonthlyTotalsUseCase sums the caller's expenses per calendar month.
type MonthlyTotalsUseCase struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.AnalyticsCache
}

// NewMonthlyTotalsUseCase creates a new MonthlyTotalsUseCase instance.
func NewMonthlyTotalsUseCase(expenseRepo adapter.ExpenseRepository, cache adapter.AnalyticsCache) *MonthlyTotalsUseCase {
	return &MonthlyTotalsUseCase{
		expenseRepo: expenseRepo,
		cache:       cache,
	}
}

// Execute computes the view.
func (uc *MonthlyTotalsUseCase) Execute(ctx context.Context, input MonthlyTotalsInput) (*MonthlyTotalsOutput, error) {
	months, err := cached(ctx, uc.cache, input.UserID, ViewMonthlyTotals, func() ([]analytics.MonthTotal, error) {
		expenses, err := uc.expenseRepo.FindByUser(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load expenses: %w", err)
		}
		return analytics.MonthlyTotals(expenses), nil
	})
	if err != nil {
		return nil, err
	}
	return &MonthlyTotalsOutput{Months: months}, nil
}
