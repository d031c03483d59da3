package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Service turns alert notices into outbox jobs.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
	now        adapter.Clock
}

// NewService creates a new email service. Links in the emails point at appBaseURL.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string, now adapter.Clock) *Service {
	if now == nil {
		now = adapter.SystemClock
	}
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
		now:        now,
	}
}

// QueueBudgetExceeded queues the email sent when a category goes over its monthly budget.
func (s *Service) QueueBudgetExceeded(ctx context.Context, userID uuid.UUID, notice adapter.BudgetExceededNotice) error {
	job := entity.NewEmailJob(
		userID,
		entity.TemplateBudgetExceeded,
		entity.EmailRecipient{Email: notice.UserEmail, Name: notice.UserName},
		fmt.Sprintf("You are over your %s budget for %s", notice.CategoryName, notice.Month),
		map[string]string{
			"user_name":     notice.UserName,
			"category_name": notice.CategoryName,
			"month":         notice.Month,
			"budget":        notice.Budget,
			"spent":         notice.Spent,
			"overspent":     notice.Overspent,
			"budgets_url":   s.appBaseURL + "/budgets",
		},
		s.now(),
	)
	job.DedupeKey = entity.BudgetAlertKey(userID, notice.CategoryID, notice.MonthStart)

	if err := s.queue.Enqueue(ctx, job); err != nil {
		if errors.Is(err, domainerror.ErrEmailAlreadyQueued) {
			return err
		}
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue budget exceeded email",
			err,
		)
	}
	return nil
}

var _ adapter.AlertMailer = (*Service)(nil)
