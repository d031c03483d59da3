// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a spending ceiling for one category in one calendar month.
// At most one budget exists per (user, category, month).
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Month      time.Time // first day of the month, 00:00 UTC
	Amount     decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBudget creates a new Budget entity. Month is truncated to the first of its month.
func NewBudget(userID, categoryID uuid.UUID, month time.Time, amount decimal.Decimal) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Month:      FirstOfMonth(month),
		Amount:     amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// FirstOfMonth returns 00:00 UTC on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the half-open range [start, end) covering month.
func MonthBounds(month time.Time) (time.Time, time.Time) {
	start := FirstOfMonth(month)
	return start, start.AddDate(0, 1, 0)
}
