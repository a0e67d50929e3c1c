package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

func (r MessageRole) Valid() bool {
	return r == MessageRoleUser || r == MessageRoleAssistant
}

type ChatMessage struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	Position  int
	Role      MessageRole
	Content   string
	Citations []string // page references, assistant answers only
	CreatedAt time.Time
	UpdatedAt time.Time
}
