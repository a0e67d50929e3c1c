package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/chatstate"
	"docchat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deliveryRecorder struct {
	mu        sync.Mutex
	delivered []recordedAction
}

func (d *deliveryRecorder) Deliver(userID uuid.UUID, action chatstate.Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered = append(d.delivered, recordedAction{UserId: userID, Action: action})
}

func (d *deliveryRecorder) snapshot() []recordedAction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]recordedAction(nil), d.delivered...)
}

func TestActionBusDeliversToOwner(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NopLogger{})
	defer pubSub.Close()

	delivery := &deliveryRecorder{}
	consumer := NewConsumerService(pubSub, "CHAT_ACTIONS", delivery, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("CHAT_ACTIONS", pubSub, logger.NewNopLogger())
	userId := uuid.New()
	chatId := uuid.New()
	publisher.PublishAction(ctx, userId, chatstate.ChatRenamed(chatId, "New title"))

	require.Eventually(t, func() bool {
		return len(delivery.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	got := delivery.snapshot()[0]
	assert.Equal(t, userId, got.UserId)
	assert.Equal(t, chatstate.ActionChatRenamed, got.Action.Type)
	assert.Equal(t, chatId, got.Action.ChatId)
	assert.Equal(t, "New title", got.Action.Title)
}

func TestConsumerSkipsMalformedPayload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NopLogger{})
	defer pubSub.Close()

	delivery := &deliveryRecorder{}
	require.NoError(t, NewConsumerService(pubSub, "CHAT_ACTIONS", delivery, logger.NewNopLogger()).Consume(ctx))

	require.NoError(t, pubSub.Publish("CHAT_ACTIONS", message.NewMessage(watermill.NewUUID(), []byte("{not json"))))
	NewPublisherService("CHAT_ACTIONS", pubSub, logger.NewNopLogger()).
		PublishAction(ctx, uuid.New(), chatstate.ChatDeleted(uuid.New()))

	require.Eventually(t, func() bool {
		return len(delivery.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, chatstate.ActionChatDeleted, delivery.snapshot()[0].Action.Type)
}

type captureLogger struct {
	logger.ILogger
	infos []map[string]interface{}
}

func (c *captureLogger) Info(module, message string, details map[string]interface{}) {
	c.infos = append(c.infos, details)
}

func TestActivityServiceDropsCredentials(t *testing.T) {
	log := &captureLogger{ILogger: logger.NewNopLogger()}
	svc := NewActivityService(nil, log)

	userId := uuid.NewString()
	err := svc.HandleEvent(context.Background(), events.New(events.UserSignedUp, map[string]interface{}{
		"user_id":  userId,
		"password": "secret",
	}))
	require.NoError(t, err)

	require.Len(t, log.infos, 1)
	assert.Equal(t, events.UserSignedUp, log.infos[0]["type"])
	assert.Equal(t, userId, log.infos[0]["user_id"])
	assert.NotContains(t, log.infos[0], "password")
}
