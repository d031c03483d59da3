package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/analytics"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// BudgetVsActualInput represents the input for the budget comparison view.
// A zero Month means the current month.
type BudgetVsActualInput struct {
	UserID uuid.UUID
	Month  time.Time
}

// BudgetVsActualOutput holds one line per budget of the month.
type BudgetVsActualOutput struct {
	Month time.Time
	Lines []analytics.BudgetLine
}

// BudgetVsActualUseCase compares the caller's budgets with their spending.
type BudgetVsActualUseCase struct {
	budgetRepo   adapter.BudgetRepository
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	cache        adapter.AnalyticsCache
	now          adapter.Clock
}

// NewBudgetVsActualUseCase creates a new BudgetVsActualUseCase instance.
func NewBudgetVsActualUseCase(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.AnalyticsCache,
	now adapter.Clock,
) *BudgetVsActualUseCase {
	if now == nil {
		now = adapter.SystemClock
	}
	return &BudgetVsActualUseCase{
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		now:          now,
	}
}

// Execute computes the view.
func (uc *BudgetVsActualUseCase) Execute(ctx context.Context, input BudgetVsActualInput) (*BudgetVsActualOutput, error) {
	month := input.Month
	if month.IsZero() {
		month = uc.now()
	}
	start, end := entity.MonthBounds(month)
	view := ViewBudgetVsActual + ":" + analytics.MonthKey(start)

	lines, err := cached(ctx, uc.cache, input.UserID, view, func() ([]analytics.BudgetLine, error) {
		budgets, err := uc.budgetRepo.FindByUserAndMonth(ctx, input.UserID, start)
		if err != nil {
			return nil, fmt.Errorf("failed to load budgets: %w", err)
		}
		if len(budgets) == 0 {
			return []analytics.BudgetLine{}, nil
		}

		expenses, err := uc.expenseRepo.FindByUserBetween(ctx, input.UserID, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to load expenses: %w", err)
		}

		ids := make([]uuid.UUID, len(budgets))
		for i, b := range budgets {
			ids[i] = b.CategoryID
		}
		categories, err := uc.categoryRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load categories: %w", err)
		}

		return analytics.BudgetVsActual(budgets, expenses, categories, start), nil
	})
	if err != nil {
		return nil, err
	}
	return &BudgetVsActualOutput{Month: start, Lines: lines}, nil
}
