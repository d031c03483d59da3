// Package reference resolves the category an expense or budget points at.
package reference

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/ownership"
)

// CategoryField is the input field a category reference arrives in.
const CategoryField = "category_id"

// ResolveCategory loads the category id refers to and checks the principal may use it.
// A missing category is a *domainerror.ValidationError with RuleExists; a private
// category of another user is domainerror.ErrUnauthorizedCategoryReference.
func ResolveCategory(ctx context.Context, repo adapter.CategoryRepository, principal, id uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, domainerror.NewValidationError(CategoryField, domainerror.RuleExists, "category does not exist")
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if err := ownership.CheckCategoryReference(principal, category); err != nil {
		return nil, err
	}
	return category, nil
}
