package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		err       string
		permanent bool
	}{
		{"[ERROR]: 422 The `to` field is invalid", true},
		{"401 Unauthorized: API key is invalid", true},
		{"403 forbidden", true},
		{"429 Too many requests", false},
		{"500 internal server error", false},
		{"dial tcp: connection refused", false},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			err := classifySendError(errors.New(tt.err))
			assert.Equal(t, tt.permanent, err.IsPermanent())
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestResendTagsAreSorted(t *testing.T) {
	assert.Nil(t, resendTags(nil))
	assert.Equal(t, []resend.Tag{
		{Name: "job_id", Value: "42"},
		{Name: "template", Value: "budget_exceeded"},
	}, resendTags(map[string]string{"template": "budget_exceeded", "job_id": "42"}))
}

func TestMockEmailSenderFailures(t *testing.T) {
	m := NewMockEmailSender()
	msg := adapter.SendEmailInput{To: "ana@example.com", Subject: "Over budget"}
	m.SetFailure(errors.New("boom"), true)

	_, err := m.Send(context.Background(), msg)
	var emailErr *domainerror.EmailError
	assert.ErrorAs(t, err, &emailErr)
	assert.True(t, emailErr.IsPermanent())
	assert.Empty(t, m.Sent())

	m.ClearFailure()
	res, err := m.Send(context.Background(), msg)
	assert.NoError(t, err)
	assert.Equal(t, "mock-1", res.ProviderID)
	assert.Len(t, m.Sent(), 1)
}
