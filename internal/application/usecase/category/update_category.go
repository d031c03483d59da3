package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/effects"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/ownership"
	"github.com/expense-tracker/backend/internal/pkg/optional"
)

// UpdateCategoryInput represents the input for category update.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       optional.Value[string]
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase renames a category the caller owns.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	effects      *effects.Recorder
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, recorder *effects.Recorder) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		effects:      recorder,
	}
}

// Execute performs the category update. Global categories and other users'
// categories are reported as not found.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := findWritable(ctx, uc.categoryRepo, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	name, ok := input.Name.Get()
	if !ok {
		return &UpdateCategoryOutput{Category: category}, nil
	}

	name, err = validateName(name)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateKey) {
			return nil, invalid(domainerror.NewValidationError(
				nameField,
				domainerror.RuleConflict,
				"a category with this name already exists",
			))
		}
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	uc.effects.Record(ctx, entity.EventCategoryUpdated, input.UserID, category.ID)

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}

// findWritable loads a category only if the principal may modify it.
func findWritable(ctx context.Context, repo adapter.CategoryRepository, principal, id uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if !ownership.CanWriteCategory(principal, category).Allowed() {
		return nil, notFound()
	}
	return category, nil
}
