package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/effects"
	"github.com/expense-tracker/backend/internal/application/usecase/reference"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/validation"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	Month      string
	Amount     *decimal.Decimal
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget   *entity.Budget
	Category *entity.Category
}

// CreateBudgetUseCase sets a monthly spending ceiling for one category.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	effects      *effects.Recorder
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository, recorder *effects.Recorder) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		effects:      recorder,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if input.CategoryID == nil {
		return nil, wrap(domainerror.NewValidationError(reference.CategoryField, domainerror.RuleRequired, "category_id is required"))
	}

	month, err := validation.Month(monthField, input.Month)
	if err != nil {
		return nil, wrap(err)
	}

	if input.Amount == nil {
		return nil, wrap(domainerror.NewValidationError(amountField, domainerror.RuleRequired, "amount is required"))
	}
	if err := validation.Money(amountField, *input.Amount, decimal.Zero); err != nil {
		return nil, wrap(err)
	}

	category, err := reference.ResolveCategory(ctx, uc.categoryRepo, input.UserID, *input.CategoryID)
	if err != nil {
		return nil, wrap(err)
	}

	budget := entity.NewBudget(input.UserID, category.ID, month, *input.Amount)
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateKey) {
			return nil, duplicate()
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	uc.effects.Record(ctx, entity.EventBudgetCreated, input.UserID, budget.ID)

	return &CreateBudgetOutput{
		Budget:   budget,
		Category: category,
	}, nil
}
