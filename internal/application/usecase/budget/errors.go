// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/reference"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	amountField = "amount"
	monthField  = "month"
)

// wrap attaches a budget error code to validation and reference failures.
func wrap(err error) error {
	if errors.Is(err, domainerror.ErrUnauthorizedCategoryReference) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryForbidden,
			"category is not available to this user",
			err,
		)
	}

	v, ok := domainerror.AsValidationError(err)
	if !ok {
		return err
	}
	code := domainerror.ErrCodeMissingBudgetFields
	switch {
	case v.Rule == domainerror.RuleConflict:
		code = domainerror.ErrCodeBudgetExists
	case v.Field == amountField:
		code = domainerror.ErrCodeInvalidBudgetAmount
	case v.Field == monthField:
		code = domainerror.ErrCodeInvalidBudgetMonth
	case v.Field == reference.CategoryField:
		code = domainerror.ErrCodeBudgetCategoryMissing
	}
	return domainerror.NewBudgetError(code, v.Message, v)
}

func notFound() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)
}

func duplicate() error {
	return wrap(domainerror.NewValidationError(
		monthField,
		domainerror.RuleConflict,
		"a budget for this category and month already exists",
	))
}

// findOwned loads a budget through the owner-scoped query.
func findOwned(ctx context.Context, repo adapter.BudgetRepository, principal, id uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByIDForUser(ctx, id, principal)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	return budget, nil
}

// categoryIndex loads the categories the budgets point at.
func categoryIndex(ctx context.Context, repo adapter.CategoryRepository, budgets []*entity.Budget) (map[uuid.UUID]*entity.Category, error) {
	seen := make(map[uuid.UUID]struct{}, len(budgets))
	ids := make([]uuid.UUID, 0, len(budgets))
	for _, b := range budgets {
		if _, ok := seen[b.CategoryID]; ok {
			continue
		}
		seen[b.CategoryID] = struct{}{}
		ids = append(ids, b.CategoryID)
	}

	categories, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget categories: %w", err)
	}
	index := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index, nil
}

// sortBudgets orders budgets by month descending, then category name.
func sortBudgets(budgets []*entity.Budget, categories map[uuid.UUID]*entity.Category) {
	name := func(b *entity.Budget) string {
		if c, ok := categories[b.CategoryID]; ok {
			return c.Name
		}
		return entity.UncategorizedName
	}
	sort.SliceStable(budgets, func(i, j int) bool {
		if !budgets[i].Month.Equal(budgets[j].Month) {
			return budgets[i].Month.After(budgets[j].Month)
		}
		return name(budgets[i]) < name(budgets[j])
	})
}
