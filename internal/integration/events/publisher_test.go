package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	deadline bool
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	_, hasDeadline := ctx.Deadline()
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg, deadline: hasDeadline})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublishSendsPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "expense-tracker.events")

	event := entity.NewDomainEvent(entity.EventExpenseCreated, uuid.New(), uuid.New())
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, ch.sent, 1)
	sent := ch.sent[0]
	assert.Equal(t, "expense-tracker.events", sent.exchange)
	assert.Equal(t, "expense.created", sent.key)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, sent.msg.DeliveryMode)
	assert.True(t, sent.deadline)

	msg, err := MessageFromJSON(sent.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "expense.created", msg.Type)
	assert.Equal(t, event.UserID.String(), msg.UserID)
	assert.Equal(t, event.EntityID.String(), msg.EntityID)
	assert.WithinDuration(t, event.OccurredAt, msg.OccurredAt, time.Millisecond)
}

func TestGlobalEventOmitsUser(t *testing.T) {
	msg := NewMessage(entity.NewDomainEvent(entity.EventCategoryCreated, uuid.Nil, uuid.New()))

	body, err := msg.ToJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(body), "user_id")
}

func TestPublishWrapsChannelError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newPublisher(ch, "events")

	err := p.Publish(context.Background(), entity.NewDomainEvent(entity.EventBudgetDeleted, uuid.New(), uuid.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish message")
}

func TestCloseClosesChannel(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "events")

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
