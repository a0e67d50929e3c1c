package service

import (
	"context"
	"encoding/json"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/chatstate"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IPublisherService emits chat store actions for the owner's live connections.
type IPublisherService interface {
	PublishAction(ctx context.Context, userId uuid.UUID, action chatstate.Action)
}

type publisherService struct {
	topicName string
	pubSub    message.Publisher
	logger    logger.ILogger
}

func NewPublisherService(topicName string, pubSub message.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		logger:    log,
	}
}

// Delivery is best effort; a failed publish never fails the request.
func (s *publisherService) PublishAction(ctx context.Context, userId uuid.UUID, action chatstate.Action) {
	payload, err := json.Marshal(dto.PublishChatActionMessage{UserId: userId, Action: action})
	if err != nil {
		s.logger.Error("PublisherService", "Failed to encode action", map[string]interface{}{"error": err.Error(), "type": action.Type})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Warn("PublisherService", "Failed to publish action", map[string]interface{}{"error": err.Error(), "type": action.Type})
	}
}

type nopPublisherService struct{}

func NewNopPublisherService() IPublisherService {
	return nopPublisherService{}
}

func (nopPublisherService) PublishAction(context.Context, uuid.UUID, chatstate.Action) {}
