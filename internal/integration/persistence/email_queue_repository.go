package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates the email outbox backed by the email_queue table.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		if errors.Is(translateError(err), domainerror.ErrDuplicateKey) {
			return domainerror.ErrEmailAlreadyQueued
		}
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to enqueue email", err)
	}
	return nil
}

func (r *emailQueueRepository) Due(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now.UTC()).
		Order("scheduled_at ASC, created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEmailJobs(rows), nil
}

// Claim flips the status only while it is still pending, so concurrent
// workers never both send the same job.
func (r *emailQueueRepository) Claim(ctx context.Context, job *entity.EmailJob, now time.Time) (bool, error) {
	now = now.UTC()
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("id = ? AND status = ?", job.ID, entity.EmailStatusPending).
		Updates(map[string]interface{}{
			"status":     entity.EmailStatusProcessing,
			"claimed_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	job.MarkClaimed(now)
	return true, nil
}

func (r *emailQueueRepository) ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("status = ? AND claimed_at < ?", entity.EmailStatusProcessing, cutoff.UTC()).
		Updates(map[string]interface{}{
			"status":     entity.EmailStatusPending,
			"claimed_at": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *emailQueueRepository) Save(ctx context.Context, job *entity.EmailJob) error {
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("id = ?", job.ID).
		Select("status", "attempts", "last_error", "provider_id", "scheduled_at", "claimed_at", "processed_at").
		Updates(model.EmailQueueModelFromEntity(job))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrEmailJobNotFound
	}
	return nil
}

func (r *emailQueueRepository) ForUser(ctx context.Context, userID uuid.UUID) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEmailJobs(rows), nil
}

func toEmailJobs(rows []model.EmailQueueModel) []*entity.EmailJob {
	jobs := make([]*entity.EmailJob, len(rows))
	for i := range rows {
		jobs[i] = rows[i].ToEntity()
	}
	return jobs
}
