package events

import (
	"context"
	"time"
)

const (
	UserSignedUp     = "USER_SIGNUP"
	UserSignedIn     = "USER_SIGNIN"
	ChatDeleted      = "CHAT_DELETED"
	DocumentUploaded = "DOCUMENT_UPLOADED"
)

// Event defines the contract for all domain events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher is satisfied by the NATS publisher. Services accept a nil Publisher.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
