// Package cache implements the analytics cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const (
	keyPrefix     = "analytics"
	globalVersion = keyPrefix + ":global:version"
)

// RedisCache stores analytics views in Redis.
//
// Keys embed a per-user version and a global version. Invalidate bumps a
// version instead of scanning for keys, so stale entries become unreachable
// and expire through their TTL. Invalidating uuid.Nil bumps the global
// version, which covers changes to global categories.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache. A non-positive ttl keeps entries until
// they are invalidated.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get decodes a cached view into dest and returns the key the view lives under.
func (c *RedisCache) Get(ctx context.Context, userID uuid.UUID, view string, dest interface{}) (adapter.CacheKey, bool, error) {
	key, err := c.entryKey(ctx, userID, view)
	if err != nil {
		return "", false, err
	}

	raw, err := c.client.Get(ctx, string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return key, false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read analytics cache: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return key, false, fmt.Errorf("failed to decode analytics cache entry: %w", err)
	}
	return key, true, nil
}

// Set stores a computed view under key. The versions in key are not re-read,
// so a view computed before an invalidation lands under the retired version.
func (c *RedisCache) Set(ctx context.Context, key adapter.CacheKey, value interface{}) error {
	if key == "" {
		return errors.New("analytics cache key is empty")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode analytics cache entry: %w", err)
	}

	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, string(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write analytics cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached view of the user.
func (c *RedisCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Incr(ctx, versionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate analytics cache: %w", err)
	}
	return nil
}

func (c *RedisCache) entryKey(ctx context.Context, userID uuid.UUID, view string) (adapter.CacheKey, error) {
	versions, err := c.client.MGet(ctx, globalVersion, versionKey(userID)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read analytics cache version: %w", err)
	}
	return adapter.CacheKey(fmt.Sprintf("%s:%s:g%s:v%s:%s", keyPrefix, userID, version(versions[0]), version(versions[1]), view)), nil
}

func versionKey(userID uuid.UUID) string {
	if userID == uuid.Nil {
		return globalVersion
	}
	return fmt.Sprintf("%s:%s:version", keyPrefix, userID)
}

func version(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "0"
}

var _ adapter.AnalyticsCache = (*RedisCache)(nil)
