package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/analytics"
)

// CategoryTotalsInput represents the input for the per-category view.
type CategoryTotalsInput struct {
	UserID uuid.UUID
}

// CategoryTotalsOutput holds one total per category, largest first.
type CategoryTotalsOutput struct {
	Categories []analytics.CategoryTotal
}

// CategoryTotalsUseCase sums the caller's categorized expenses per category.
type CategoryTotalsUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	cache        adapter.AnalyticsCache
}

// NewCategoryTotalsUseCase creates a new CategoryTotalsUseCase instance.
func NewCategoryTotalsUseCase(expenseRepo adapter.ExpenseRepository, categoryRepo adapter.CategoryRepository, cache adapter.AnalyticsCache) *CategoryTotalsUseCase {
	return &CategoryTotalsUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute computes the view.
func (uc *CategoryTotalsUseCase) Execute(ctx context.Context, input CategoryTotalsInput) (*CategoryTotalsOutput, error) {
	totals, err := cached(ctx, uc.cache, input.UserID, ViewCategoryTotals, func() ([]analytics.CategoryTotal, error) {
		expenses, err := uc.expenseRepo.FindByUser(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load expenses: %w", err)
		}
		categories, err := uc.categoryRepo.FindVisibleToUser(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load categories: %w", err)
		}
		return analytics.CategoryTotals(expenses, categories), nil
	})
	if err != nil {
		return nil, err
	}
	return &CategoryTotalsOutput{Categories: totals}, nil
}
