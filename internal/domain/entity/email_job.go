package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EmailStatus is where a job is in the outbox lifecycle:
// pending -> processing -> sent | failed, with failed attempts returning to pending.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email job is rendered with.
type EmailTemplateType string

const (
	TemplateBudgetExceeded EmailTemplateType = "budget_exceeded"
)

// DefaultEmailMaxAttempts bounds how often a job is tried before it is marked failed.
const DefaultEmailMaxAttempts = 3

// emailRetryDelays is indexed by the number of attempts already made.
var emailRetryDelays = []time.Duration{0, 1 * time.Minute, 5 * time.Minute}

// BudgetAlertKey identifies the one budget-exceeded alert a user gets per
// category and month.
func BudgetAlertKey(userID, categoryID uuid.UUID, month time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s", TemplateBudgetExceeded, userID, categoryID, month.UTC().Format("2006-01"))
}

// EmailRecipient is who an alert is addressed to.
type EmailRecipient struct {
	Email string
	Name  string
}

// EmailJob is a notification waiting in the outbox. TemplateData holds the
// preformatted strings the template renders. The outbox holds at most one job
// per non-empty DedupeKey.
type EmailJob struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	TemplateType EmailTemplateType
	DedupeKey    string
	To           EmailRecipient
	Subject      string
	TemplateData map[string]string
	Status       EmailStatus
	Attempts     int
	MaxAttempts  int
	LastError    string
	ProviderID   string
	CreatedAt    time.Time
	ScheduledAt  time.Time
	ClaimedAt    *time.Time
	ProcessedAt  *time.Time
}

// NewEmailJob creates a pending job due at now.
func NewEmailJob(userID uuid.UUID, template EmailTemplateType, to EmailRecipient, subject string, data map[string]string, now time.Time) *EmailJob {
	now = now.UTC()
	if data == nil {
		data = map[string]string{}
	}
	return &EmailJob{
		ID:           uuid.New(),
		UserID:       userID,
		TemplateType: template,
		To:           to,
		Subject:      subject,
		TemplateData: data,
		Status:       EmailStatusPending,
		MaxAttempts:  DefaultEmailMaxAttempts,
		CreatedAt:    now,
		ScheduledAt:  now,
	}
}

// MarkClaimed records that a worker took the job at now.
func (e *EmailJob) MarkClaimed(now time.Time) {
	e.Status = EmailStatusProcessing
	e.ClaimedAt = &now
}

// MarkSent records a successful delivery at now.
func (e *EmailJob) MarkSent(providerID string, now time.Time) {
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ClaimedAt = nil
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt at now. The job is rescheduled unless the
// failure is permanent or the attempts are exhausted.
func (e *EmailJob) MarkFailed(err error, permanent bool, now time.Time) {
	e.Attempts++
	e.LastError = err.Error()
	e.ClaimedAt = nil

	if permanent || !e.CanRetry() {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(e.retryDelay())
}

func (e *EmailJob) retryDelay() time.Duration {
	if e.Attempts < len(emailRetryDelays) {
		return emailRetryDelays[e.Attempts]
	}
	return emailRetryDelays[len(emailRetryDelays)-1]
}

// CanRetry reports whether another attempt is allowed.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}
