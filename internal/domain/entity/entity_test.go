package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCategoryOwner(t *testing.T) {
	userID := uuid.New()

	owned := NewCategory("  Groceries ", UserOwner{UserID: userID})
	if owned.Name != "Groceries" {
		t.Errorf("expected trimmed name, got %q", owned.Name)
	}
	if owned.IsGlobal() {
		t.Error("expected user-owned category not to be global")
	}
	if id, ok := owned.OwnerUserID(); !ok || id != userID {
		t.Errorf("expected owner %s, got %s (ok=%v)", userID, id, ok)
	}
	if owned.Owner.Scope() != userID.String() {
		t.Errorf("expected scope %s, got %s", userID, owned.Owner.Scope())
	}

	global := NewCategory("Food", GlobalOwner{})
	if !global.IsGlobal() {
		t.Error("expected global category")
	}
	if _, ok := global.OwnerUserID(); ok {
		t.Error("expected no owning user for global category")
	}
	if global.Owner.Scope() != GlobalScope {
		t.Errorf("expected scope %s, got %s", GlobalScope, global.Owner.Scope())
	}
}

func TestCategoryNameKey(t *testing.T) {
	if CategoryNameKey("  Food ") != CategoryNameKey("food") {
		t.Error("expected name keys to ignore case and surrounding space")
	}
}

func TestFirstOfMonth(t *testing.T) {
	in := time.Date(2024, time.March, 17, 22, 30, 0, 0, time.FixedZone("UTC-3", -3*3600))
	got := FirstOfMonth(in)
	want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}

	start, end := MonthBounds(time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC))
	if !start.Equal(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %s", start)
	}
	if !end.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end %s", end)
	}
}

func TestEmailJob_MarkFailed(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("reschedules transient failures", func(t *testing.T) {
		job := NewEmailJob(uuid.New(), TemplateBudgetExceeded, EmailRecipient{Email: "a@example.com", Name: "A"}, "subject", nil, now)
		job.MarkFailed(errors.New("timeout"), false, now)

		if job.Status != EmailStatusPending {
			t.Errorf("expected pending, got %s", job.Status)
		}
		if job.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", job.Attempts)
		}
		if !job.ScheduledAt.Equal(now.Add(time.Minute)) {
			t.Errorf("expected retry in one minute, got %s", job.ScheduledAt)
		}
	})

	t.Run("fails permanently", func(t *testing.T) {
		job := NewEmailJob(uuid.New(), TemplateBudgetExceeded, EmailRecipient{Email: "a@example.com", Name: "A"}, "subject", nil, now)
		job.MarkFailed(errors.New("422"), true, now)

		if job.Status != EmailStatusFailed {
			t.Errorf("expected failed, got %s", job.Status)
		}
		if job.ProcessedAt == nil || !job.ProcessedAt.Equal(now) {
			t.Error("expected processed time to be recorded")
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		job := NewEmailJob(uuid.New(), TemplateBudgetExceeded, EmailRecipient{Email: "a@example.com", Name: "A"}, "subject", nil, now)
		for i := 0; i < DefaultEmailMaxAttempts; i++ {
			job.MarkFailed(errors.New("timeout"), false, now)
		}
		if job.Status != EmailStatusFailed {
			t.Errorf("expected failed after %d attempts, got %s", DefaultEmailMaxAttempts, job.Status)
		}
		if job.CanRetry() {
			t.Error("expected no retries left")
		}
	})

	t.Run("releases the claim", func(t *testing.T) {
		job := NewEmailJob(uuid.New(), TemplateBudgetExceeded, EmailRecipient{Email: "a@example.com", Name: "A"}, "subject", nil, now)
		job.MarkClaimed(now)
		if job.Status != EmailStatusProcessing || job.ClaimedAt == nil {
			t.Fatal("expected the job to be claimed")
		}
		job.MarkFailed(errors.New("timeout"), false, now)
		if job.ClaimedAt != nil {
			t.Error("expected the claim to be cleared")
		}
	})
}
