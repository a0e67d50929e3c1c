package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/chatstate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)
	return hub
}

func connect(t *testing.T, hub *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.ConnectedCount(userID) > 0 }, time.Second, 5*time.Millisecond)
	return c
}

func TestDeliverReachesOnlyOwner(t *testing.T) {
	hub := startHub(t)
	alice := uuid.New()
	bob := uuid.New()

	phone := connect(t, hub, alice, 4)
	laptop := connect(t, hub, alice, 4)
	bobConn := connect(t, hub, bob, 4)
	require.Eventually(t, func() bool { return hub.ConnectedCount(alice) == 2 }, time.Second, 5*time.Millisecond)

	chatId := uuid.New()
	hub.Deliver(alice, chatstate.ChatDeleted(chatId))

	for _, c := range []*Client{phone, laptop} {
		select {
		case data := <-c.Send:
			var frame struct {
				Type string           `json:"type"`
				Data chatstate.Action `json:"data"`
			}
			require.NoError(t, json.Unmarshal(data, &frame))
			assert.Equal(t, "chat_action", frame.Type)
			assert.Equal(t, chatstate.ActionChatDeleted, frame.Data.Type)
			assert.Equal(t, chatId, frame.Data.ChatId)
		case <-time.After(time.Second):
			t.Fatal("expected action on every connection of the owner")
		}
	}

	select {
	case <-bobConn.Send:
		t.Fatal("action leaked to another user")
	default:
	}
}

func TestDeliverDropsWhenBufferFull(t *testing.T) {
	hub := startHub(t)
	alice := uuid.New()
	c := connect(t, hub, alice, 1)

	hub.Deliver(alice, chatstate.ChatRenamed(uuid.New(), "a"))
	hub.Deliver(alice, chatstate.ChatRenamed(uuid.New(), "b"))

	assert.Len(t, c.Send, 1)
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	alice := uuid.New()
	c := connect(t, hub, alice, 1)

	hub.unregister <- c
	require.Eventually(t, func() bool { return hub.ConnectedCount(alice) == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)
}
