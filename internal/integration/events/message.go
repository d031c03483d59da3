// Package events publishes domain events to RabbitMQ.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Message is the JSON body of a published event.
type Message struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id,omitempty"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewMessage converts a domain event into its wire form. Global changes carry no user_id.
func NewMessage(event entity.DomainEvent) Message {
	msg := Message{
		Type:       string(event.Type),
		EntityID:   event.EntityID.String(),
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.UserID != uuid.Nil {
		msg.UserID = event.UserID.String()
	}
	return msg
}

// ToJSON encodes the message.
func (m Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON decodes a message.
func MessageFromJSON(data []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return msg, err
}
