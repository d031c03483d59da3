package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/analytics"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// RecentActivityInput represents the input for the recent activity view.
type RecentActivityInput struct {
	UserID uuid.UUID
}

// RecentActivityOutput holds the newest expenses with their category names.
type RecentActivityOutput struct {
	Expenses []analytics.RecentExpense
}

// RecentActivityUseCase returns the caller's latest expenses.
type RecentActivityUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	cache        adapter.AnalyticsCache
	limit        int
}

// NewRecentActivityUseCase creates a new RecentActivityUseCase instance.
func NewRecentActivityUseCase(expenseRepo adapter.ExpenseRepository, categoryRepo adapter.CategoryRepository, cache adapter.AnalyticsCache) *RecentActivityUseCase {
	return &RecentActivityUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		limit:        analytics.DefaultRecentLimit,
	}
}

// Execute computes the view.
func (uc *RecentActivityUseCase) Execute(ctx context.Context, input RecentActivityInput) (*RecentActivityOutput, error) {
	recent, err := cached(ctx, uc.cache, input.UserID, ViewRecentActivity, func() ([]analytics.RecentExpense, error) {
		expenses, err := uc.expenseRepo.FindRecentByUser(ctx, input.UserID, uc.limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load expenses: %w", err)
		}
		categories, err := uc.categoryRepo.FindByIDs(ctx, referencedCategories(expenses))
		if err != nil {
			return nil, fmt.Errorf("failed to load categories: %w", err)
		}
		return analytics.RecentActivity(expenses, categories, uc.limit), nil
	})
	if err != nil {
		return nil, err
	}
	return &RecentActivityOutput{Expenses: recent}, nil
}

func referencedCategories(expenses []*entity.Expense) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, e := range expenses {
		if e.CategoryID == nil {
			continue
		}
		if _, ok := seen[*e.CategoryID]; ok {
			continue
		}
		seen[*e.CategoryID] = struct{}{}
		ids = append(ids, *e.CategoryID)
	}
	return ids
}
