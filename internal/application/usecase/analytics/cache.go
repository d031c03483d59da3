// Package analytics contains the read-only analytics use cases.
package analytics

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// View names used as cache keys.
const (
	ViewMonthlyTotals  = "monthly_totals"
	ViewCategoryTotals = "category_totals"
	ViewRecentActivity = "recent_activity"
	ViewBudgetVsActual = "budget_vs_actual"
)

// cached returns the stored view if present, otherwise computes and stores it
// under the key read before computing. Cache failures fall back to computing
// the view.
func cached[T any](ctx context.Context, cache adapter.AnalyticsCache, userID uuid.UUID, view string, compute func() (T, error)) (T, error) {
	var key adapter.CacheKey
	if cache != nil {
		var hit T
		k, found, err := cache.Get(ctx, userID, view, &hit)
		if err != nil {
			slog.WarnContext(ctx, "Analytics cache read failed", "user_id", userID, "view", view, "error", err)
		} else if found {
			return hit, nil
		}
		key = k
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	if key != "" {
		if err := cache.Set(ctx, key, value); err != nil {
			slog.WarnContext(ctx, "Analytics cache write failed", "user_id", userID, "view", view, "error", err)
		}
	}
	return value, nil
}
