package service

import (
	"context"
	"encoding/json"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/chatstate"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// ActionDelivery pushes an action to a user's open connections. The websocket hub implements it.
type ActionDelivery interface {
	Deliver(userID uuid.UUID, action chatstate.Action)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    message.Subscriber
	topicName string
	delivery  ActionDelivery
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub message.Subscriber,
	topicName string,
	delivery ActionDelivery,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.PublishChatActionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal action", map[string]interface{}{"error": err.Error()})
		// redelivery cannot fix a bad payload
		msg.Ack()
		return
	}

	cs.delivery.Deliver(payload.UserId, payload.Action)
	msg.Ack()
}
