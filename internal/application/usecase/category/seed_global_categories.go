package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/effects"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DefaultGlobalCategories are created when no list is configured.
var DefaultGlobalCategories = []string{"Food", "Transport", "Bills", "Entertainment", "Health"}

// SeedGlobalCategoriesInput represents the input for seeding.
type SeedGlobalCategoriesInput struct {
	Names []string
}

// SeedGlobalCategoriesOutput lists what the run created and what already existed.
type SeedGlobalCategoriesOutput struct {
	Created []*entity.Category
	Skipped []string
}

// SeedGlobalCategoriesUseCase creates the shared categories every user sees.
// It is the only path that creates categories without an owning user.
type SeedGlobalCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	effects      *effects.Recorder
}

// NewSeedGlobalCategoriesUseCase creates a new SeedGlobalCategoriesUseCase instance.
func NewSeedGlobalCategoriesUseCase(categoryRepo adapter.CategoryRepository, recorder *effects.Recorder) *SeedGlobalCategoriesUseCase {
	return &SeedGlobalCategoriesUseCase{
		categoryRepo: categoryRepo,
		effects:      recorder,
	}
}

// Execute is idempotent: names that already exist globally are skipped.
func (uc *SeedGlobalCategoriesUseCase) Execute(ctx context.Context, input SeedGlobalCategoriesInput) (*SeedGlobalCategoriesOutput, error) {
	names := input.Names
	if len(names) == 0 {
		names = DefaultGlobalCategories
	}

	output := &SeedGlobalCategoriesOutput{
		Created: []*entity.Category{},
		Skipped: []string{},
	}
	for _, raw := range names {
		name, err := validateName(raw)
		if err != nil {
			return nil, err
		}

		category := entity.NewCategory(name, entity.GlobalOwner{})
		if err := uc.categoryRepo.Create(ctx, category); err != nil {
			if errors.Is(err, domainerror.ErrDuplicateKey) {
				output.Skipped = append(output.Skipped, name)
				continue
			}
			return nil, fmt.Errorf("failed to seed category %q: %w", name, err)
		}

		slog.InfoContext(ctx, "Seeded global category", "name", name, "category_id", category.ID)
		uc.effects.Record(ctx, entity.EventCategoryCreated, uuid.Nil, category.ID)
		output.Created = append(output.Created, category)
	}

	return output, nil
}
