package service

import (
	"context"
	"strings"
	"time"

	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/access"
	"docchat-be/pkg/chatstate"
	"docchat-be/pkg/events"

	"github.com/google/uuid"
)

type IChatService interface {
	ListChats(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error)
	CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	GetChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (*dto.ChatResponse, error)
	RenameChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, req *dto.UpdateChatRequest) (*dto.ChatResponse, error)
	DeleteChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	gate             *access.Gate
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	gate *access.Gate,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		gate:             gate,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// ListChats returns the user's chats newest first, each with its messages in order.
func (s *chatService) ListChats(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatResponse, 0, len(chats))
	if len(chats) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(chats))
	for _, chat := range chats {
		ids = append(ids, chat.Id)
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatIDs{ChatIDs: ids},
		specification.InConversationOrder{},
	)
	if err != nil {
		return nil, err
	}

	byChat := make(map[uuid.UUID][]*entity.ChatMessage, len(chats))
	for _, m := range messages {
		byChat[m.ChatId] = append(byChat[m.ChatId], m)
	}
	for _, chat := range chats {
		result = append(result, toChatResponse(chat, byChat[chat.Id]))
	}
	return result, nil
}

func (s *chatService) CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	chat := &entity.Chat{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     strings.TrimSpace(req.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}

	s.publisherService.PublishAction(ctx, userId, chatstate.ChatCreated(toStateChat(chat, nil)))
	return toChatResponse(chat, nil), nil
}

func (s *chatService) GetChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.gate.AuthorizeChatAccess(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}

	messages, err := loadMessages(ctx, uow, chat.Id)
	if err != nil {
		return nil, err
	}
	return toChatResponse(chat, messages), nil
}

func (s *chatService) RenameChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, req *dto.UpdateChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	chat, err := s.gate.AuthorizeChatAccess(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}

	chat.Title = strings.TrimSpace(req.Title)
	chat.UpdatedAt = time.Now()
	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		return nil, err
	}

	messages, err := loadMessages(ctx, uow, chat.Id)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisherService.PublishAction(ctx, userId, chatstate.ChatRenamed(chat.Id, chat.Title))
	return toChatResponse(chat, messages), nil
}

// DeleteChat removes the chat and all of its messages atomically.
func (s *chatService) DeleteChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	chat, err := s.gate.AuthorizeChatAccess(ctx, uow, userId, chatId)
	if err != nil {
		return err
	}

	if err := uow.ChatMessageRepository().DeleteByChatId(ctx, chat.Id); err != nil {
		return err
	}
	if err := uow.ChatRepository().Delete(ctx, chat.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publisherService.PublishAction(ctx, userId, chatstate.ChatDeleted(chat.Id))
	publishEvent(ctx, s.eventPublisher, s.logger, events.ChatDeleted, map[string]interface{}{
		"user_id": userId.String(),
		"chat_id": chat.Id.String(),
	})
	return nil
}

func loadMessages(ctx context.Context, uow unitofwork.UnitOfWork, chatId uuid.UUID) ([]*entity.ChatMessage, error) {
	return uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.InConversationOrder{},
	)
}
