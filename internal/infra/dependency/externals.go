package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/events"
)

// ConnectExternals builds the production clients from configuration. Redis and
// the broker are optional: when disabled or unreachable the no-op
// implementations are used and the failure is logged.
// The returned cleanup closes everything that was opened.
func ConnectExternals(ctx context.Context, cfg *config.Config, dbPing func(context.Context) error) (Externals, func()) {
	var closers []func() error

	ext := Externals{
		Cache:  cache.NoopCache{},
		Events: events.NoopPublisher{},
		Tokens: adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer),
		HealthChecks: []controller.HealthCheck{
			{Name: "database", Check: dbPing},
		},
	}

	if cfg.Redis.Enabled {
		client, err := newRedisClient(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, analytics cache disabled", "error", err)
		} else {
			ext.Cache = cache.NewRedisCache(client, cfg.Redis.TTL)
			ext.HealthChecks = append(ext.HealthChecks, controller.HealthCheck{
				Name:  "redis",
				Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			})
			closers = append(closers, client.Close)
		}
	}

	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			slog.Warn("Event broker unavailable, domain events disabled", "error", err)
		} else {
			ext.Events = publisher
			closers = append(closers, publisher.Close)
		}
	}

	if cfg.Email.ResendAPIKey != "" {
		ext.EmailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("RESEND_API_KEY not set, alert emails are recorded but not delivered")
		ext.EmailSender = email.NewMockEmailSender()
	}

	cleanup := func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				slog.Error("Failed to close external client", "error", err)
			}
		}
	}
	return ext, cleanup
}

func newRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
