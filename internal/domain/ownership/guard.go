// Package ownership decides whether a principal may read or write an entity.
// Every function is a pure function of the principal id and the entity.
package ownership

import (
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Decision is the outcome of an ownership check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Allowed reports whether the decision is Allow.
func (d Decision) Allowed() bool {
	return d == Allow
}

// String implements fmt.Stringer.
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// CanReadCategory allows categories owned by the principal and global categories.
func CanReadCategory(principal uuid.UUID, category *entity.Category) Decision {
	if category == nil {
		return Deny
	}
	switch owner := category.Owner.(type) {
	case entity.GlobalOwner:
		return Allow
	case entity.UserOwner:
		return allowIf(owner.UserID == principal)
	default:
		return Deny
	}
}

// CanWriteCategory allows only categories owned by the principal. Global categories are never writable.
func CanWriteCategory(principal uuid.UUID, category *entity.Category) Decision {
	if category == nil {
		return Deny
	}
	switch owner := category.Owner.(type) {
	case entity.UserOwner:
		return allowIf(owner.UserID == principal)
	case entity.GlobalOwner:
		return Deny
	default:
		return Deny
	}
}

// CanAccessExpense allows only the expense's owner.
func CanAccessExpense(principal uuid.UUID, expense *entity.Expense) Decision {
	if expense == nil {
		return Deny
	}
	return allowIf(expense.UserID == principal)
}

// CanAccessBudget allows only the budget's owner.
func CanAccessBudget(principal uuid.UUID, budget *entity.Budget) Decision {
	if budget == nil {
		return Deny
	}
	return allowIf(budget.UserID == principal)
}

// CheckCategoryReference validates a category an expense or budget is about to point at.
func CheckCategoryReference(principal uuid.UUID, category *entity.Category) error {
	if !CanReadCategory(principal, category).Allowed() {
		return domainerror.ErrUnauthorizedCategoryReference
	}
	return nil
}

func allowIf(ok bool) Decision {
	if ok {
		return Allow
	}
	return Deny
}
