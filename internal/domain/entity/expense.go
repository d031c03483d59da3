// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single spending event.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  *uuid.UUID // nil means uncategorized
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity owned by userID.
func NewExpense(userID uuid.UUID, categoryID *uuid.UUID, amount decimal.Decimal, date time.Time, description string) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Date:        date.UTC(),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasCategory reports whether the expense references a category.
func (e *Expense) HasCategory() bool {
	return e.CategoryID != nil
}

// InCategory reports whether the expense references the given category.
func (e *Expense) InCategory(categoryID uuid.UUID) bool {
	return e.CategoryID != nil && *e.CategoryID == categoryID
}
