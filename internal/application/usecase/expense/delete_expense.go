package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/effects"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	UserID    uuid.UUID
	ExpenseID uuid.UUID
}

// DeleteExpenseUseCase hard-deletes one of the caller's expenses.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	effects     *effects.Recorder
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(expenseRepo adapter.ExpenseRepository, recorder *effects.Recorder) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
		effects:     recorder,
	}
}

// Execute performs the expense deletion.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	expense, err := findOwned(ctx, uc.expenseRepo, input.UserID, input.ExpenseID)
	if err != nil {
		return err
	}

	if err := uc.expenseRepo.Delete(ctx, expense.ID); err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return notFound()
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	uc.effects.Record(ctx, entity.EventExpenseDeleted, input.UserID, expense.ID)
	return nil
}
