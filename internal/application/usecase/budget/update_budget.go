package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/effects"
	"github.com/expense-tracker/backend/internal/application/usecase/reference"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/validation"
	"github.com/expense-tracker/backend/internal/pkg/optional"
)

// UpdateBudgetInput represents the input for budget update. Unset fields are left unchanged.
type UpdateBudgetInput struct {
	UserID     uuid.UUID
	BudgetID   uuid.UUID
	CategoryID optional.Value[*uuid.UUID]
	Month      optional.Value[string]
	Amount     optional.Value[*decimal.Decimal]
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget   *entity.Budget
	Category *entity.Category
}

// UpdateBudgetUseCase applies a partial update to one of the caller's budgets.
type UpdateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	effects      *effects.Recorder
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository, recorder *effects.Recorder) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		effects:      recorder,
	}
}

// Execute performs the budget update. Moving onto an existing (category, month)
// pair is reported with RuleConflict.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := findOwned(ctx, uc.budgetRepo, input.UserID, input.BudgetID)
	if err != nil {
		return nil, err
	}

	if raw, ok := input.Month.Get(); ok {
		month, err := validation.Month(monthField, raw)
		if err != nil {
			return nil, wrap(err)
		}
		budget.Month = month
	}

	if amount, ok := input.Amount.Get(); ok {
		if amount == nil {
			return nil, wrap(domainerror.NewValidationError(amountField, domainerror.RuleRequired, "amount is required"))
		}
		if err := validation.Money(amountField, *amount, decimal.Zero); err != nil {
			return nil, wrap(err)
		}
		budget.Amount = *amount
	}

	var category *entity.Category
	if categoryID, ok := input.CategoryID.Get(); ok {
		if categoryID == nil {
			return nil, wrap(domainerror.NewValidationError(reference.CategoryField, domainerror.RuleRequired, "category_id is required"))
		}
		category, err = reference.ResolveCategory(ctx, uc.categoryRepo, input.UserID, *categoryID)
		if err != nil {
			return nil, wrap(err)
		}
		budget.CategoryID = category.ID
	}

	budget.UpdatedAt = time.Now().UTC()
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrDuplicateKey):
			return nil, duplicate()
		case errors.Is(err, domainerror.ErrNotFound):
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	if category == nil {
		categories, err := categoryIndex(ctx, uc.categoryRepo, []*entity.Budget{budget})
		if err != nil {
			return nil, err
		}
		category = categories[budget.CategoryID]
	}

	uc.effects.Record(ctx, entity.EventBudgetUpdated, input.UserID, budget.ID)

	return &UpdateBudgetOutput{
		Budget:   budget,
		Category: category,
	}, nil
}
