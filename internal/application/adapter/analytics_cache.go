// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// CacheKey names one view of one user at the cache versions read by Get.
type CacheKey string

// AnalyticsCache stores computed analytics views per user.
// Entries are dropped whenever the user's expenses, budgets or categories change.
type AnalyticsCache interface {
	// Get decodes a cached view into dest. It reports false on a miss. The
	// returned key is pinned to the versions current at lookup time.
	Get(ctx context.Context, userID uuid.UUID, view string, dest interface{}) (CacheKey, bool, error)

	// Set stores a computed view under a key returned by Get. A value stored
	// under a key taken before an invalidation is never served.
	Set(ctx context.Context, key CacheKey, value interface{}) error

	// Invalidate drops every cached view of the user. uuid.Nil drops the views
	// of all users, for changes to global categories.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
