package dto

import (
	"time"

	"docchat-be/pkg/chatstate"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Title string `json:"title" validate:"required"`
}

type UpdateChatRequest struct {
	Title string `json:"title" validate:"required"`
}

type CreateMessageRequest struct {
	Content string `json:"content" validate:"required"`
	Role    string `json:"role" validate:"required,oneof=user assistant"`
}

type UpdateMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type RegenerateRequest struct {
	Content string `json:"content" validate:"required"`
}

type ChatResponse struct {
	Id        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	UserId    uuid.UUID          `json:"userId"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Messages  []*MessageResponse `json:"messages"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	ChatId    uuid.UUID `json:"chatId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Citations []string  `json:"citations,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublishChatActionMessage travels on the in-process action topic.
type PublishChatActionMessage struct {
	UserId uuid.UUID        `json:"user_id"`
	Action chatstate.Action `json:"action"`
}
