package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EmailQueueModel is a row of the email outbox. TemplateData is stored as a JSON document.
type EmailQueueModel struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	TemplateType   string            `gorm:"type:varchar(50);not null"`
	DedupeKey      *string           `gorm:"type:varchar(150);uniqueIndex"`
	RecipientEmail string            `gorm:"type:varchar(255);not null"`
	RecipientName  string            `gorm:"type:varchar(255)"`
	Subject        string            `gorm:"type:varchar(500);not null"`
	TemplateData   map[string]string `gorm:"type:text;serializer:json"`
	Status         string            `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due,priority:1"`
	Attempts       int               `gorm:"not null;default:0"`
	MaxAttempts    int               `gorm:"not null;default:3"`
	LastError      string            `gorm:"type:text"`
	ProviderID     string            `gorm:"type:varchar(100)"`
	CreatedAt      time.Time         `gorm:"not null"`
	ScheduledAt    time.Time         `gorm:"not null;index:idx_email_queue_due,priority:2"`
	ClaimedAt      *time.Time
	ProcessedAt    *time.Time
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts the row to a domain EmailJob. Times come back in UTC.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := m.TemplateData
	if data == nil {
		data = make(map[string]string)
	}

	return &entity.EmailJob{
		ID:             m.ID,
		UserID:         m.UserID,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		DedupeKey:      derefString(m.DedupeKey),
		To:             entity.EmailRecipient{Email: m.RecipientEmail, Name: m.RecipientName},
		Subject:        m.Subject,
		TemplateData:   data,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ProviderID:     m.ProviderID,
		CreatedAt:      m.CreatedAt.UTC(),
		ScheduledAt:    m.ScheduledAt.UTC(),
		ClaimedAt:      utcPtr(m.ClaimedAt),
		ProcessedAt:    utcPtr(m.ProcessedAt),
	}
}

// EmailQueueModelFromEntity creates the row for job.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	return &EmailQueueModel{
		ID:             job.ID,
		UserID:         job.UserID,
		TemplateType:   string(job.TemplateType),
		DedupeKey:      nilIfEmpty(job.DedupeKey),
		RecipientEmail: job.To.Email,
		RecipientName:  job.To.Name,
		Subject:        job.Subject,
		TemplateData:   job.TemplateData,
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ProviderID:     job.ProviderID,
		CreatedAt:      job.CreatedAt.UTC(),
		ScheduledAt:    job.ScheduledAt.UTC(),
		ClaimedAt:      utcPtr(job.ClaimedAt),
		ProcessedAt:    utcPtr(job.ProcessedAt),
	}
}

// nilIfEmpty stores a missing dedupe key as NULL, which the unique index ignores.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
