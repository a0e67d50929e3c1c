package service

import (
	"context"
	"errors"
	"time"

	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/access"
	"docchat-be/pkg/chatstate"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole    = errors.New("role must be user or assistant")
	ErrNotUserMessage = errors.New("only user messages can be regenerated")
)

type IMessageService interface {
	AppendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
	EditMessage(ctx context.Context, userId, chatId, messageId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error)
	RegenerateFrom(ctx context.Context, userId, chatId, messageId uuid.UUID, req *dto.RegenerateRequest) (*dto.ChatResponse, error)
}

type messageService struct {
	uowFactory       unitofwork.RepositoryFactory
	gate             *access.Gate
	answerer         *answerer
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	gate *access.Gate,
	qaClient QAClient,
	observer QAObserver,
	publisherService IPublisherService,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:       uowFactory,
		gate:             gate,
		answerer:         newAnswerer(qaClient, observer, log),
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *messageService) AppendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	role := entity.MessageRole(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	chat, err := s.gate.LockChat(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}

	message := newMessage(role, req.Content, nil)
	if err := appendMessages(ctx, uow, chat.Id, message); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisherService.PublishAction(ctx, userId, chatstate.MessageAppended(toStateMessage(message)))
	return toMessageResponse(message), nil
}

// EditMessage only reaches messages inside a chat the caller owns.
func (s *messageService) EditMessage(ctx context.Context, userId, chatId, messageId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	_, message, err := s.gate.AuthorizeMessageAccess(ctx, uow, userId, chatId, messageId)
	if err != nil {
		return nil, err
	}

	message.Content = req.Content
	message.UpdatedAt = time.Now()
	if err := uow.ChatMessageRepository().Update(ctx, message); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisherService.PublishAction(ctx, userId, chatstate.MessageEdited(toStateMessage(message)))
	return toMessageResponse(message), nil
}

// RegenerateFrom edits a user message, drops everything after it and appends a
// fresh answer. The backend is asked before the transaction opens; the edit,
// the truncation and the new answer then commit together.
func (s *messageService) RegenerateFrom(ctx context.Context, userId, chatId, messageId uuid.UUID, req *dto.RegenerateRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	_, message, err := s.gate.AuthorizeMessageAccess(ctx, uow, userId, chatId, messageId)
	if err != nil {
		return nil, err
	}
	if message.Role != entity.MessageRoleUser {
		return nil, ErrNotUserMessage
	}

	r := s.answerer.answer(ctx, req.Content)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	chat, message, err := s.gate.LockMessage(ctx, uow, userId, chatId, messageId)
	if err != nil {
		return nil, err
	}

	message.Content = req.Content
	message.UpdatedAt = time.Now()
	if err := uow.ChatMessageRepository().Update(ctx, message); err != nil {
		return nil, err
	}

	if _, err := uow.ChatMessageRepository().DeleteAfter(ctx, chat.Id, message.Position); err != nil {
		return nil, err
	}

	assistant := newMessage(entity.MessageRoleAssistant, r.Content, r.Citations)
	if err := appendMessages(ctx, uow, chat.Id, assistant); err != nil {
		return nil, err
	}

	messages, err := loadMessages(ctx, uow, chat.Id)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisherService.PublishAction(ctx, userId, chatstate.MessageEdited(toStateMessage(message)))
	s.publisherService.PublishAction(ctx, userId, chatstate.MessagesTruncated(chat.Id, message.Id))
	s.publisherService.PublishAction(ctx, userId, chatstate.MessageAppended(toStateMessage(assistant)))
	return toChatResponse(chat, messages), nil
}
