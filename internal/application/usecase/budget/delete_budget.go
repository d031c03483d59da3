package budget

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

// DeleteBudgetInput represents the input for budget deletion.
type DeleteBudgetInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// DeleteBudgetUseCase hard-deletes one of the caller's budgets.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	effects    *effects.Recorder
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository, recorder *effects.Recorder) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo: budgetRepo,
		effects:    recorder,
	}
}

// Execute performs the budget deletion.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) error {
	budget, err := findOwned(ctx, uc.budgetRepo, input.UserID, input.BudgetID)
	if err != nil {
		return err
	}

	if err := uc.budgetRepo.Delete(ctx, budget.ID); err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return notFound()
		}
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	uc.effects.Record(ctx, entity.EventBudgetDeleted, input.UserID, budget.ID)
	return nil
}
