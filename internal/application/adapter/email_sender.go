// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SendEmailInput is one rendered email. Tags are passed to the provider
// for filtering and are not shown to the recipient.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
	Tags    map[string]string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send delivers a rendered email.
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// BudgetExceededNotice carries what the budget-exceeded email reports.
type BudgetExceededNotice struct {
	CategoryID   uuid.UUID
	MonthStart   time.Time
	UserName     string
	UserEmail    string
	CategoryName string
	Month        string
	Budget       string
	Spent        string
	Overspent    string
}

// AlertMailer queues notification emails for later delivery.
type AlertMailer interface {
	// QueueBudgetExceeded queues the email sent when spending first passes a
	// budget. It fails with domainerror.ErrEmailAlreadyQueued when the user was
	// already alerted for that category and month.
	QueueBudgetExceeded(ctx context.Context, userID uuid.UUID, notice BudgetExceededNotice) error
}
