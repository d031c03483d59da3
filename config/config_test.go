package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, []string{"Food", "Transport", "Bills", "Entertainment", "Health"}, cfg.Seed.GlobalCategories)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("ANALYTICS_CACHE_TTL", "30s")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "7")
	t.Setenv("SEED_GLOBAL_CATEGORIES", " Rent , ,Travel")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.URL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, 7, cfg.RateLimit.Requests)
	assert.Equal(t, []string{"Rent", "Travel"}, cfg.Seed.GlobalCategories)
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("REDIS_ENABLED", "maybe")
	t.Setenv("ANALYTICS_CACHE_TTL", "soon")
	t.Setenv("SEED_GLOBAL_CATEGORIES", " , ")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Len(t, cfg.Seed.GlobalCategories, 5)
}
