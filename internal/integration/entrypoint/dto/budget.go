package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/pkg/optional"
)

// CreateBudgetRequest represents the request body for budget creation.
// Month is YYYY-MM or YYYY-MM-01.
type CreateBudgetRequest struct {
	CategoryID *uuid.UUID       `json:"category_id"`
	Month      string           `json:"month"`
	Amount     *decimal.Decimal `json:"amount"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	CategoryID optional.Value[*uuid.UUID]      `json:"category_id"`
	Month      optional.Value[string]           `json:"month"`
	Amount     optional.Value[*decimal.Decimal] `json:"amount"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Month        string    `json:"month"`
	Amount       string    `json:"amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a Budget and its category to a BudgetResponse DTO.
// A missing category leaves the name empty.
func ToBudgetResponse(budget *entity.Budget, category *entity.Category) BudgetResponse {
	response := BudgetResponse{
		ID:         budget.ID.String(),
		CategoryID: budget.CategoryID.String(),
		Month:      Month(budget.Month),
		Amount:     Money(budget.Amount),
		CreatedAt:  budget.CreatedAt,
		UpdatedAt:  budget.UpdatedAt,
	}
	if category != nil {
		response.CategoryName = category.Name
	}
	return response
}

// ToBudgetListResponse converts budgets to a BudgetListResponse.
func ToBudgetListResponse(budgets []*entity.Budget, categories map[uuid.UUID]*entity.Category) BudgetListResponse {
	items := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		items[i] = ToBudgetResponse(budget, categories[budget.CategoryID])
	}
	return BudgetListResponse{
		Budgets: items,
	}
}
