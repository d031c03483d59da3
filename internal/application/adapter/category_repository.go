// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// Writes that collide with an existing name in the same owner scope fail with domainerror.ErrDuplicateKey.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID regardless of owner.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByIDs retrieves the categories with the given IDs that still exist.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Category, error)

	// FindVisibleToUser retrieves categories owned by the user plus global ones, ordered by name.
	FindVisibleToUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// HasDependents reports whether any expense or budget of any user references the category.
	HasDependents(ctx context.Context, id uuid.UUID) (bool, error)
}
