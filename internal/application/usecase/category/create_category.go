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

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase creates a category private to the caller.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	effects      *effects.Recorder
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, recorder *effects.Recorder) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		effects:      recorder,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	category := entity.NewCategory(name, entity.UserOwner{UserID: input.UserID})

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateKey) {
			return nil, invalid(domainerror.NewValidationError(
				nameField,
				domainerror.RuleUnique,
				"a category with this name already exists",
			))
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	uc.effects.Record(ctx, entity.EventCategoryCreated, input.UserID, category.ID)

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}
