package service

import (
	"bytes"
	"context"
	"fmt"

	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/metrics"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/access"
	"docchat-be/pkg/chatstate"
	"docchat-be/pkg/document"
	"docchat-be/pkg/events"
	"docchat-be/pkg/qa"

	"github.com/google/uuid"
)

// DocumentArchive keeps a copy of every accepted upload. Optional.
type DocumentArchive interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
}

type IAssistantService interface {
	Ask(ctx context.Context, userId, chatId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error)
	UploadDocument(ctx context.Context, userId, chatId uuid.UUID, filename string, data []byte) (*dto.MessageResponse, error)
}

type assistantService struct {
	uowFactory       unitofwork.RepositoryFactory
	gate             *access.Gate
	qaClient         QAClient
	answerer         *answerer
	archive          DocumentArchive
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	gate *access.Gate,
	qaClient QAClient,
	observer QAObserver,
	archive DocumentArchive,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		uowFactory:       uowFactory,
		gate:             gate,
		qaClient:         qaClient,
		answerer:         newAnswerer(qaClient, observer, log),
		archive:          archive,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Ask stores the question and the answer (or the troubleshooting text) as one
// user/assistant pair. Backend failures never surface as errors.
func (s *assistantService) Ask(ctx context.Context, userId, chatId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.gate.AuthorizeChatAccess(ctx, uow, userId, chatId); err != nil {
		return nil, err
	}

	r := s.answerer.answer(ctx, req.Question)

	question := newMessage(entity.MessageRoleUser, req.Question, nil)
	answer := newMessage(entity.MessageRoleAssistant, r.Content, r.Citations)
	if err := s.appendInTx(ctx, uow, userId, chatId, question, answer); err != nil {
		return nil, err
	}

	return &dto.AskResponse{
		UserMessage:      toMessageResponse(question),
		AssistantMessage: toMessageResponse(answer),
	}, nil
}

// UploadDocument forwards a PDF to the backend and records the outcome as an assistant message.
func (s *assistantService) UploadDocument(ctx context.Context, userId, chatId uuid.UUID, filename string, data []byte) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.gate.AuthorizeChatAccess(ctx, uow, userId, chatId); err != nil {
		return nil, err
	}

	content := s.forward(ctx, userId, chatId, filename, data)

	message := newMessage(entity.MessageRoleAssistant, content, nil)
	if err := s.appendInTx(ctx, uow, userId, chatId, message); err != nil {
		return nil, err
	}
	return toMessageResponse(message), nil
}

func (s *assistantService) forward(ctx context.Context, userId, chatId uuid.UUID, filename string, data []byte) string {
	info, err := document.InspectPDF(filename, data)
	if err != nil {
		s.answerer.observe("upload", metrics.OutcomeRejected)
		return qa.UploadFailedMessage(filename, document.UserMessage(err))
	}

	if s.archive != nil {
		key := fmt.Sprintf("%s/%s/%s-%s", userId, chatId, uuid.NewString(), filename)
		if err := s.archive.Put(ctx, key, "application/pdf", data); err != nil {
			s.logger.Warn("AssistantService", "Failed to archive document", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	token, err := s.qaClient.MintToken(ctx)
	if err != nil {
		s.logger.Warn("AssistantService", "QA token request failed", map[string]interface{}{"filename": filename, "error": err.Error()})
		s.answerer.observe("token", metrics.OutcomeFailure)
		return qa.UploadFailedMessage(filename, qa.PublicDetail(err))
	}

	if err := s.qaClient.UploadDocument(ctx, filename, bytes.NewReader(data), token); err != nil {
		s.logger.Warn("AssistantService", "Document upload failed", map[string]interface{}{"filename": filename, "error": err.Error()})
		s.answerer.observe("upload", metrics.OutcomeFailure)
		return qa.UploadFailedMessage(filename, qa.PublicDetail(err))
	}

	s.answerer.observe("upload", metrics.OutcomeSuccess)
	publishEvent(ctx, s.eventPublisher, s.logger, events.DocumentUploaded, map[string]interface{}{
		"user_id":  userId.String(),
		"chat_id":  chatId.String(),
		"filename": info.Filename,
		"pages":    info.Pages,
		"size":     info.Size,
	})
	return qa.UploadSucceededMessage(filename)
}

// appendInTx re-checks ownership and locks the chat inside the transaction that writes the messages.
func (s *assistantService) appendInTx(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId uuid.UUID, messages ...*entity.ChatMessage) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	chat, err := s.gate.LockChat(ctx, uow, userId, chatId)
	if err != nil {
		return err
	}
	if err := appendMessages(ctx, uow, chat.Id, messages...); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	for _, m := range messages {
		s.publisherService.PublishAction(ctx, userId, chatstate.MessageAppended(toStateMessage(m)))
	}
	return nil
}
