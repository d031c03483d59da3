// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
// Every read is scoped to one owning user.
type ExpenseRepository interface {
	// Create creates a new expense in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByIDForUser retrieves an expense by ID only if the user owns it.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Expense, error)

	// FindByUser retrieves the user's expenses, newest date first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error)

	// FindByUserBetween retrieves the user's expenses dated in [from, to).
	FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Expense, error)

	// FindRecentByUser retrieves at most limit of the user's newest expenses.
	FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Expense, error)

	// Update updates an existing expense in the database.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
