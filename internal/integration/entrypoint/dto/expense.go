package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/pkg/optional"
)

// CreateExpenseRequest represents the request body for expense creation.
// Amount accepts a JSON string or number.
type CreateExpenseRequest struct {
	CategoryID  *uuid.UUID       `json:"category_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
}

// UpdateExpenseRequest represents the request body for expense update.
// Absent fields are left unchanged; "category_id": null clears the category.
type UpdateExpenseRequest struct {
	CategoryID  optional.Value[*uuid.UUID]     `json:"category_id"`
	Amount      optional.Value[decimal.Decimal] `json:"amount"`
	Date        optional.Value[string]          `json:"date"`
	Description optional.Value[string]          `json:"description"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	CategoryID  *string   `json:"category_id"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(expense *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID.String(),
		CategoryID:  uuidString(expense.CategoryID),
		Amount:      Money(expense.Amount),
		Date:        Date(expense.Date),
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

// ToExpenseListResponse converts expenses to an ExpenseListResponse.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	items := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		items[i] = ToExpenseResponse(expense)
	}
	return ExpenseListResponse{
		Expenses: items,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
