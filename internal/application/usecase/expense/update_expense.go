package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/alert"
	"github.com/expense-tracker/backend/internal/application/usecase/effects"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/validation"
	"github.com/expense-tracker/backend/internal/pkg/optional"
)

// UpdateExpenseInput represents the input for expense update.
// Unset fields are left unchanged; a set CategoryID of nil clears the category.
type UpdateExpenseInput struct {
	UserID      uuid.UUID
	ExpenseID   uuid.UUID
	CategoryID  optional.Value[*uuid.UUID]
	Amount      optional.Value[decimal.Decimal]
	Date        optional.Value[string]
	Description optional.Value[string]
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase applies a partial update to one of the caller's expenses.
type UpdateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	effects      *effects.Recorder
	alerter      *alert.BudgetAlertUseCase
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	recorder *effects.Recorder,
	alerter *alert.BudgetAlertUseCase,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		effects:      recorder,
		alerter:      alerter,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := findOwned(ctx, uc.expenseRepo, input.UserID, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	previous := *expense

	if amount, ok := input.Amount.Get(); ok {
		if err := validation.Money(amountField, amount, validation.MinExpenseAmount); err != nil {
			return nil, wrap(err)
		}
		expense.Amount = amount
	}

	if raw, ok := input.Date.Get(); ok {
		date, err := validation.Date(dateField, raw)
		if err != nil {
			return nil, wrap(err)
		}
		expense.Date = date
	}

	if raw, ok := input.Description.Get(); ok {
		description, err := validateDescription(raw)
		if err != nil {
			return nil, wrap(err)
		}
		expense.Description = description
	}

	if categoryID, ok := input.CategoryID.Get(); ok {
		if err := resolveCategory(ctx, uc.categoryRepo, input.UserID, categoryID); err != nil {
			return nil, wrap(err)
		}
		expense.CategoryID = categoryID
	}

	expense.UpdatedAt = time.Now().UTC()
	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	uc.effects.Record(ctx, entity.EventExpenseUpdated, input.UserID, expense.ID)
	notifyBudget(ctx, uc.alerter, expense, &previous)

	return &UpdateExpenseOutput{
		Expense: expense,
	}, nil
}
