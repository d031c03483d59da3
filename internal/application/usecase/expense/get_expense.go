package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetExpenseInput represents the input for fetching one expense.
type GetExpenseInput struct {
	UserID    uuid.UUID
	ExpenseID uuid.UUID
}

// GetExpenseOutput represents the output of fetching one expense.
type GetExpenseOutput struct {
	Expense *entity.Expense
}

// GetExpenseUseCase returns one of the caller's expenses.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository) *GetExpenseUseCase {
	return &GetExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute fetches the expense.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*GetExpenseOutput, error) {
	expense, err := findOwned(ctx, uc.expenseRepo, input.UserID, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	return &GetExpenseOutput{
		Expense: expense,
	}, nil
}

// findOwned loads an expense through the owner-scoped query.
func findOwned(ctx context.Context, repo adapter.ExpenseRepository, principal, id uuid.UUID) (*entity.Expense, error) {
	expense, err := repo.FindByIDForUser(ctx, id, principal)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return expense, nil
}
