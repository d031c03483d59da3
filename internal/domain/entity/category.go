// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GlobalScope is the owner scope shared by every global category.
const GlobalScope = "global"

// UncategorizedName labels expenses whose category is unset or no longer resolves.
const UncategorizedName = "Uncategorized"

// CategoryOwner is either a UserOwner or the GlobalOwner.
// The interface is sealed so switches over it only ever see these two variants.
type CategoryOwner interface {
	// Scope returns the key category names are unique within.
	Scope() string
	isCategoryOwner()
}

// UserOwner marks a category private to one user.
type UserOwner struct {
	UserID uuid.UUID
}

// Scope returns the owning user's id.
func (o UserOwner) Scope() string { return o.UserID.String() }

func (UserOwner) isCategoryOwner() {}

// GlobalOwner marks a category visible to every user and mutable by none.
type GlobalOwner struct{}

// Scope returns GlobalScope.
func (GlobalOwner) Scope() string { return GlobalScope }

func (GlobalOwner) isCategoryOwner() {}

// Category is a named spending bucket.
type Category struct {
	ID        uuid.UUID
	Name      string
	Owner     CategoryOwner
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity. The name is expected to be validated already.
func NewCategory(name string, owner CategoryOwner) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsGlobal reports whether the category has no owning user.
func (c *Category) IsGlobal() bool {
	_, ok := c.Owner.(GlobalOwner)
	return ok
}

// OwnerUserID returns the owning user's id, or false for global categories.
func (c *Category) OwnerUserID() (uuid.UUID, bool) {
	if o, ok := c.Owner.(UserOwner); ok {
		return o.UserID, true
	}
	return uuid.Nil, false
}

// NameKey returns the case-insensitive form used for uniqueness within a scope.
func (c *Category) NameKey() string {
	return CategoryNameKey(c.Name)
}

// CategoryNameKey normalizes a category name for uniqueness comparison.
func CategoryNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
