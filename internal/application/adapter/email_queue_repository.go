package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EmailQueueRepository is the outbox the alert emails pass through.
// Jobs are enqueued by mutations and drained by the email worker.
type EmailQueueRepository interface {
	// Enqueue fails with domainerror.ErrEmailAlreadyQueued when a job with the
	// same dedupe key is already in the outbox.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// Due returns up to limit pending jobs scheduled at or before now, oldest schedule first.
	Due(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Claim moves a pending job to processing at now. It reports false when
	// another worker claimed the job first.
	Claim(ctx context.Context, job *entity.EmailJob, now time.Time) (bool, error)

	// ReleaseStale returns jobs claimed before cutoff to pending, for workers
	// that stopped mid-send. It reports how many were released.
	ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error)

	// Save stores the outcome of a delivery attempt.
	Save(ctx context.Context, job *entity.EmailJob) error

	// ForUser lists a user's jobs, newest first.
	ForUser(ctx context.Context, userID uuid.UUID) ([]*entity.EmailJob, error)
}
