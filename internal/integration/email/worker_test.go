package email_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/persistence"
	"github.com/expense-tracker/backend/internal/integration/persistence/persistencetest"
)

type WorkerSuite struct {
	suite.Suite
	ctx     context.Context
	queue   adapter.EmailQueueRepository
	sender  *email.MockEmailSender
	service *email.Service
	worker  *email.Worker
	now     time.Time
	userID  uuid.UUID
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) SetupTest() {
	s.ctx = context.Background()
	s.queue = persistence.NewEmailQueueRepository(persistencetest.NewDB(s.T()))
	s.sender = email.NewMockEmailSender()
	s.now = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	s.userID = uuid.New()

	clock := func() time.Time { return s.now }
	s.service = email.NewService(s.queue, "https://app.example.com", clock)

	renderer, err := templates.NewRenderer()
	s.Require().NoError(err)

	s.worker = email.NewWorker(s.queue, s.sender, renderer, email.WorkerConfig{BatchSize: 5}, clock)
}

func (s *WorkerSuite) queueNotice() {
	s.Require().NoError(s.queueNoticeFor(uuid.New()))
}

func (s *WorkerSuite) queueNoticeFor(categoryID uuid.UUID) error {
	return s.service.QueueBudgetExceeded(s.ctx, s.userID, adapter.BudgetExceededNotice{
		CategoryID:   categoryID,
		MonthStart:   time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		UserName:     "Ana",
		UserEmail:    "ana@example.com",
		CategoryName: "Food",
		Month:        "2026-10",
		Budget:       "200.00",
		Spent:        "215.50",
		Overspent:    "15.50",
	})
}

func (s *WorkerSuite) onlyJob() *entity.EmailJob {
	jobs, err := s.queue.ForUser(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	return jobs[0]
}

func (s *WorkerSuite) TestSendsQueuedBudgetAlert() {
	s.queueNotice()

	s.worker.ProcessNow(s.ctx)

	sent := s.sender.Sent()
	s.Require().Len(sent, 1)
	s.Equal("ana@example.com", sent[0].To)
	s.Contains(sent[0].Subject, "Food")
	s.Contains(sent[0].HTML, "215.50")
	s.Contains(sent[0].Text, "Over by: 15.50")
	s.Contains(sent[0].Text, "https://app.example.com/budgets")
	s.Equal("budget_exceeded", sent[0].Tags["template"])

	job := s.onlyJob()
	s.Equal(entity.EmailStatusSent, job.Status)
	s.Equal("mock-1", job.ProviderID)
	s.NotNil(job.ProcessedAt)
}

func (s *WorkerSuite) TestTemporaryFailureIsRetriedLater() {
	s.queueNotice()
	s.sender.SetFailure(errors.New("503 service unavailable"), false)

	s.worker.ProcessNow(s.ctx)

	job := s.onlyJob()
	s.Equal(entity.EmailStatusPending, job.Status)
	s.Equal(1, job.Attempts)
	s.True(job.ScheduledAt.After(s.now))

	s.sender.ClearFailure()
	s.worker.ProcessNow(s.ctx)
	s.Empty(s.sender.Sent())

	s.now = s.now.Add(2 * time.Minute)
	s.worker.ProcessNow(s.ctx)
	s.Len(s.sender.Sent(), 1)
	s.Equal(entity.EmailStatusSent, s.onlyJob().Status)
}

func (s *WorkerSuite) TestPermanentFailureStopsRetries() {
	s.queueNotice()
	s.sender.SetFailure(errors.New("422 validation error"), true)

	s.worker.ProcessNow(s.ctx)

	job := s.onlyJob()
	s.Equal(entity.EmailStatusFailed, job.Status)
	s.Equal(1, job.Attempts)
	s.Contains(job.LastError, "422")
}

func (s *WorkerSuite) TestUnknownTemplateFailsPermanently() {
	to := entity.EmailRecipient{Email: "ana@example.com", Name: "Ana"}
	job := entity.NewEmailJob(s.userID, entity.EmailTemplateType("welcome"), to, "Hi", nil, s.now)
	s.Require().NoError(s.queue.Enqueue(s.ctx, job))

	s.worker.ProcessNow(s.ctx)

	s.Empty(s.sender.Sent())
	s.Equal(entity.EmailStatusFailed, s.onlyJob().Status)
}

func (s *WorkerSuite) TestRecoversStaleClaim() {
	s.queueNotice()
	job := s.onlyJob()

	claimed, err := s.queue.Claim(s.ctx, job, s.now)
	s.Require().NoError(err)
	s.Require().True(claimed)

	s.worker.ProcessNow(s.ctx)
	s.Empty(s.sender.Sent(), "a live claim is left alone")

	s.now = s.now.Add(5 * time.Minute)
	s.worker.ProcessNow(s.ctx)
	s.Len(s.sender.Sent(), 1)
	s.Equal(entity.EmailStatusSent, s.onlyJob().Status)
}

func (s *WorkerSuite) TestSendsBatchConcurrently() {
	for i := 0; i < 3; i++ {
		s.queueNotice()
	}

	s.worker.ProcessNow(s.ctx)

	s.Len(s.sender.Sent(), 3)
	jobs, err := s.queue.ForUser(s.ctx, s.userID)
	s.Require().NoError(err)
	for _, job := range jobs {
		s.Equal(entity.EmailStatusSent, job.Status)
	}
}

func (s *WorkerSuite) TestBudgetAlertQueuedOncePerCategoryAndMonth() {
	food := uuid.New()
	s.Require().NoError(s.queueNoticeFor(food))
	s.ErrorIs(s.queueNoticeFor(food), domainerror.ErrEmailAlreadyQueued)

	s.worker.ProcessNow(s.ctx)
	s.Len(s.sender.Sent(), 1)

	s.Require().NoError(s.queueNoticeFor(uuid.New()), "another category is alerted separately")
}

func (s *WorkerSuite) TestStartStopsWithContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- s.worker.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(2 * time.Second):
		s.Fail("worker did not stop")
	}
}
