// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
// OwnerScope is the owning user's id or "global"; with NameKey it carries the
// per-scope uniqueness constraint so two global categories also collide.
type CategoryModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(255);not null"`
	NameKey    string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_scope_name,priority:2"`
	OwnerScope string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_categories_scope_name,priority:1"`
	OwnerID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var owner entity.CategoryOwner = entity.GlobalOwner{}
	if m.OwnerID != nil {
		owner = entity.UserOwner{UserID: *m.OwnerID}
	}

	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Owner:     owner,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var ownerID *uuid.UUID
	if id, ok := category.OwnerUserID(); ok {
		ownerID = &id
	}

	return &CategoryModel{
		ID:         category.ID,
		Name:       category.Name,
		NameKey:    category.NameKey(),
		OwnerScope: category.Owner.Scope(),
		OwnerID:    ownerID,
		CreatedAt:  category.CreatedAt.UTC(),
		UpdatedAt:  category.UpdatedAt.UTC(),
	}
}
