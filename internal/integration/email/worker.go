package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

// WorkerConfig holds configuration for the email worker. Zero values take
// the defaults from DefaultWorkerConfig.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// Concurrency bounds the sends in flight per batch.
	Concurrency int
	// ClaimTimeout is how long a job may stay in processing before another
	// worker takes it over.
	ClaimTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		Concurrency:  4,
		ClaimTimeout: 2 * time.Minute,
	}
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	d := DefaultWorkerConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.ClaimTimeout <= 0 {
		c.ClaimTimeout = d.ClaimTimeout
	}
	return c
}

// Worker drains the email outbox.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	config   WorkerConfig
	now      adapter.Clock
}

// NewWorker creates a new email worker. A nil clock uses the wall clock.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig, now adapter.Clock) *Worker {
	if now == nil {
		now = adapter.SystemClock
	}
	return &Worker{
		queue:    queue,
		sender:   sender,
		renderer: renderer,
		config:   config.withDefaults(),
		now:      now,
	}
}

// Start polls the outbox until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "Email worker started",
		"poll_interval", w.config.PollInterval,
		"batch_size", w.config.BatchSize,
		"concurrency", w.config.Concurrency,
	)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		w.ProcessNow(ctx)

		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return nil
		case <-ticker.C:
		}
	}
}

// ProcessNow releases stale claims and sends one batch synchronously.
func (w *Worker) ProcessNow(ctx context.Context) {
	now := w.now()

	released, err := w.queue.ReleaseStale(ctx, now.Add(-w.config.ClaimTimeout))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to release stale email jobs", "error", err)
	} else if released > 0 {
		slog.WarnContext(ctx, "Released stale email jobs", "count", released)
	}

	jobs, err := w.queue.Due(ctx, now, w.config.BatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to get pending email jobs", "error", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	slog.DebugContext(ctx, "Processing email batch", "count", len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.config.Concurrency)
	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		job := job
		g.Go(func() error {
			w.processJob(gctx, job)
			return nil
		})
	}
	_ = g.Wait()
}

func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"user_id", job.UserID,
	)

	claimed, err := w.queue.Claim(ctx, job, w.now())
	if err != nil {
		logger.Error("Failed to claim email job", "error", err)
		return
	}
	if !claimed {
		logger.Debug("Email job claimed by another worker")
		return
	}

	body, err := w.render(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		w.fail(ctx, logger, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.To.Email,
		Name:    job.To.Name,
		Subject: job.Subject,
		HTML:    body.HTML,
		Text:    body.Text,
		Tags: map[string]string{
			"template": string(job.TemplateType),
			"job_id":   job.ID.String(),
		},
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.IsPermanent()
		logger.Error("Failed to send email", "error", err, "permanent", permanent)
		w.fail(ctx, logger, job, err, permanent)
		return
	}

	job.MarkSent(result.ProviderID, w.now())
	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Email sent", "provider_id", result.ProviderID)
}

func (w *Worker) render(job *entity.EmailJob) (templates.Rendered, error) {
	switch job.TemplateType {
	case entity.TemplateBudgetExceeded:
		return w.renderer.Render(job.TemplateType, templates.BudgetExceededFromJob(job.TemplateData))
	default:
		return templates.Rendered{}, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}
}

func (w *Worker) fail(ctx context.Context, logger *slog.Logger, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent, w.now())

	if saveErr := w.queue.Save(ctx, job); saveErr != nil {
		logger.Error("Failed to update job after failure", "error", saveErr)
		return
	}

	if job.Status == entity.EmailStatusFailed {
		logger.Warn("Email job permanently failed",
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}
	logger.Info("Email job scheduled for retry",
		"attempts", job.Attempts,
		"scheduled_at", job.ScheduledAt,
	)
}
