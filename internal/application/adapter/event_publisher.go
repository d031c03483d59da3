// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EventPublisher announces committed mutations to other services.
type EventPublisher interface {
	// Publish sends a domain event. Delivery is best effort.
	Publish(ctx context.Context, event entity.DomainEvent) error

	// Close releases the underlying connection.
	Close() error
}
