package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// NoopCache never stores anything. It is used when Redis is disabled.
type NoopCache struct{}

// Get always misses.
func (NoopCache) Get(context.Context, uuid.UUID, string, interface{}) (adapter.CacheKey, bool, error) {
	return "", false, nil
}

// Set discards the value.
func (NoopCache) Set(context.Context, adapter.CacheKey, interface{}) error {
	return nil
}

// Invalidate does nothing.
func (NoopCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}

var _ adapter.AnalyticsCache = NoopCache{}
