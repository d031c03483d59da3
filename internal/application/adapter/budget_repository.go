// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
// A second budget for the same (user, category, month) fails with domainerror.ErrDuplicateKey.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByIDForUser retrieves a budget by ID only if the user owns it.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Budget, error)

	// FindByUser retrieves the user's budgets, newest month first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// FindByUserAndMonth retrieves the user's budgets for one month.
	FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*entity.Budget, error)

	// FindByUserCategoryMonth retrieves the single budget for a (user, category, month), or nil.
	FindByUserCategoryMonth(ctx context.Context, userID, categoryID uuid.UUID, month time.Time) (*entity.Budget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
