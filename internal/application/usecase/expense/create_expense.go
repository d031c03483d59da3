package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/alert"
	"github.com/expense-tracker/backend/internal/application/usecase/effects"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/validation"
)

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	Amount      *decimal.Decimal
	Date        string
	Description string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase records a new expense for the caller.
type CreateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	effects      *effects.Recorder
	alerter      *alert.BudgetAlertUseCase
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
// alerter may be nil to disable budget alerts.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	recorder *effects.Recorder,
	alerter *alert.BudgetAlertUseCase,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		effects:      recorder,
		alerter:      alerter,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if input.Amount == nil {
		return nil, wrap(domainerror.NewValidationError(amountField, domainerror.RuleRequired, "amount is required"))
	}
	if err := validation.Money(amountField, *input.Amount, validation.MinExpenseAmount); err != nil {
		return nil, wrap(err)
	}

	date, err := validation.Date(dateField, input.Date)
	if err != nil {
		return nil, wrap(err)
	}

	description, err := validateDescription(input.Description)
	if err != nil {
		return nil, wrap(err)
	}

	if err := resolveCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID); err != nil {
		return nil, wrap(err)
	}

	expense := entity.NewExpense(input.UserID, input.CategoryID, *input.Amount, date, description)
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	uc.effects.Record(ctx, entity.EventExpenseCreated, input.UserID, expense.ID)
	notifyBudget(ctx, uc.alerter, expense, nil)

	return &CreateExpenseOutput{
		Expense: expense,
	}, nil
}
