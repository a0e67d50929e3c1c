package service

import (
	"context"
	"time"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

func newMessage(role entity.MessageRole, content string, citations []string) *entity.ChatMessage {
	now := time.Now()
	return &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      role,
		Content:   content,
		Citations: citations,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// appendMessages places messages at the end of the chat in the given order.
// Callers must hold the chat lock (access.Gate.LockChat) so two writers never
// read the same count.
func appendMessages(ctx context.Context, uow unitofwork.UnitOfWork, chatId uuid.UUID, messages ...*entity.ChatMessage) error {
	count, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatID{ChatID: chatId})
	if err != nil {
		return err
	}

	for i, m := range messages {
		m.ChatId = chatId
		m.Position = int(count) + i
		if err := uow.ChatMessageRepository().Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
