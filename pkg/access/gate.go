package access

import (
	"context"
	"errors"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var (
	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")
)

// Gate resolves chats and messages only for their owner. A chat that exists
// but belongs to someone else is reported exactly like a missing one.
type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

// AuthorizeChatAccess must run on the same unit of work the caller mutates through.
func (g *Gate) AuthorizeChatAccess(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId uuid.UUID) (*entity.Chat, error) {
	return g.findChat(ctx, uow, userId, chatId)
}

// LockChat is AuthorizeChatAccess that also holds the chat row until the
// transaction ends. Every write that places messages goes through it, so
// writers on one chat run one after another.
func (g *Gate) LockChat(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId uuid.UUID) (*entity.Chat, error) {
	return g.findChat(ctx, uow, userId, chatId, specification.ForUpdate{})
}

func (g *Gate) AuthorizeMessageAccess(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId, messageId uuid.UUID) (*entity.Chat, *entity.ChatMessage, error) {
	chat, err := g.findChat(ctx, uow, userId, chatId)
	if err != nil {
		return nil, nil, err
	}
	return g.findMessage(ctx, uow, chat, messageId)
}

// LockMessage resolves a message after locking its chat.
func (g *Gate) LockMessage(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId, messageId uuid.UUID) (*entity.Chat, *entity.ChatMessage, error) {
	chat, err := g.LockChat(ctx, uow, userId, chatId)
	if err != nil {
		return nil, nil, err
	}
	return g.findMessage(ctx, uow, chat, messageId)
}

func (g *Gate) findChat(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId uuid.UUID, extra ...specification.Specification) (*entity.Chat, error) {
	specs := append([]specification.Specification{
		specification.ByID{ID: chatId},
		specification.UserOwnedBy{UserID: userId},
	}, extra...)

	chat, err := uow.ChatRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	return chat, nil
}

func (g *Gate) findMessage(ctx context.Context, uow unitofwork.UnitOfWork, chat *entity.Chat, messageId uuid.UUID) (*entity.Chat, *entity.ChatMessage, error) {
	message, err := uow.ChatMessageRepository().FindOne(ctx,
		specification.ByID{ID: messageId},
		specification.ByChatID{ChatID: chat.Id},
	)
	if err != nil {
		return nil, nil, err
	}
	if message == nil {
		return nil, nil, ErrMessageNotFound
	}
	return chat, message, nil
}
