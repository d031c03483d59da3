package category

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

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	effects      *effects.Recorder
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, recorder *effects.Recorder) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		effects:      recorder,
	}
}

// Execute deletes a category the caller owns. A category still referenced by
// any expense or budget is kept and reported with RuleInUse.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := findWritable(ctx, uc.categoryRepo, input.UserID, input.CategoryID)
	if err != nil {
		return err
	}

	inUse, err := uc.categoryRepo.HasDependents(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse {
		return invalid(domainerror.NewValidationError(
			"id",
			domainerror.RuleInUse,
			"category is still used by expenses or budgets",
		))
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return notFound()
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	uc.effects.Record(ctx, entity.EventCategoryDeleted, input.UserID, category.ID)
	return nil
}
