// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a committed change to an entity.
type EventType string

const (
	EventCategoryCreated EventType = "category.created"
	EventCategoryUpdated EventType = "category.updated"
	EventCategoryDeleted EventType = "category.deleted"
	EventExpenseCreated  EventType = "expense.created"
	EventExpenseUpdated  EventType = "expense.updated"
	EventExpenseDeleted  EventType = "expense.deleted"
	EventBudgetCreated   EventType = "budget.created"
	EventBudgetUpdated   EventType = "budget.updated"
	EventBudgetDeleted   EventType = "budget.deleted"
)

// DomainEvent describes a change after it has been persisted.
// UserID is uuid.Nil for changes to global categories.
type DomainEvent struct {
	Type       EventType
	UserID     uuid.UUID
	EntityID   uuid.UUID
	OccurredAt time.Time
}

// NewDomainEvent creates a DomainEvent stamped with the current time.
func NewDomainEvent(eventType EventType, userID, entityID uuid.UUID) DomainEvent {
	return DomainEvent{
		Type:       eventType,
		UserID:     userID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}
