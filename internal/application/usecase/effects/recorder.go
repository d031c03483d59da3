// Package effects runs the follow-up work of a committed mutation.
package effects

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Recorder drops the user's cached analytics and announces the change.
// Neither step can fail the mutation that triggered it.
type Recorder struct {
	cache  adapter.AnalyticsCache
	events adapter.EventPublisher
}

// NewRecorder creates a Recorder. Either dependency may be nil.
func NewRecorder(cache adapter.AnalyticsCache, events adapter.EventPublisher) *Recorder {
	return &Recorder{
		cache:  cache,
		events: events,
	}
}

// Record is called after a write has been persisted.
func (r *Recorder) Record(ctx context.Context, eventType entity.EventType, userID, entityID uuid.UUID) {
	if r == nil {
		return
	}

	if r.cache != nil {
		if err := r.cache.Invalidate(ctx, userID); err != nil {
			slog.WarnContext(ctx, "Failed to invalidate analytics cache",
				"user_id", userID,
				"event", eventType,
				"error", err,
			)
		}
	}

	if r.events != nil {
		if err := r.events.Publish(ctx, entity.NewDomainEvent(eventType, userID, entityID)); err != nil {
			slog.WarnContext(ctx, "Failed to publish domain event",
				"user_id", userID,
				"event", eventType,
				"entity_id", entityID,
				"error", err,
			)
		}
	}
}
