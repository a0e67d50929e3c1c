package service

import (
	"context"
	"testing"

	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/metrics"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/pkg/testutil"
	"docchat-be/pkg/access"
	"docchat-be/pkg/chatstate"
	"docchat-be/pkg/qa"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMessage(t *testing.T) {
	ctx := context.Background()
	f := newFactory(t)
	alice := testutil.CreateUser(t, f, "alice@example.com")
	chat := testutil.CreateChat(t, f, alice.Id, "Chat")
	svc := NewMessageService(f, access.NewGate(), &fakeQA{}, nil, NewNopPublisherService(), logger.NewNopLogger())

	for i, content := range []string{"one", "two", "three"} {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		_, err := svc.AppendMessage(ctx, alice.Id, chat.Id, &dto.CreateMessageRequest{Content: content, Role: role})
		require.NoError(t, err)
	}

	chats := NewChatService(f, access.NewGate(), NewNopPublisherService(), nil, logger.NewNopLogger())
	got, err := chats.GetChat(ctx, alice.Id, chat.Id)
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "one", got.Messages[0].Content)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, "three", got.Messages[2].Content)

	_, err = svc.AppendMessage(ctx, alice.Id, chat.Id, &dto.CreateMessageRequest{Content: "x", Role: "system"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.AppendMessage(ctx, uuid.New(), chat.Id, &dto.CreateMessageRequest{Content: "x", Role: "user"})
	assert.ErrorIs(t, err, access.ErrChatNotFound)
}

func TestEditMessage(t *testing.T) {
	ctx := context.Background()
	f := newFactory(t)
	alice := testutil.CreateUser(t, f, "alice@example.com")
	bob := testutil.CreateUser(t, f, "bob@example.com")
	chat := testutil.CreateChat(t, f, alice.Id, "Chat")
	msg := testutil.CreateMessage(t, f, chat.Id, 0, entity.MessageRoleUser, "original")
	svc := NewMessageService(f, access.NewGate(), &fakeQA{}, nil, NewNopPublisherService(), logger.NewNopLogger())

	edited, err := svc.EditMessage(ctx, alice.Id, chat.Id, msg.Id, &dto.UpdateMessageRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Content)

	_, err = svc.EditMessage(ctx, bob.Id, chat.Id, msg.Id, &dto.UpdateMessageRequest{Content: "hijack"})
	assert.ErrorIs(t, err, access.ErrChatNotFound)

	bobChat := testutil.CreateChat(t, f, bob.Id, "Bob")
	_, err = svc.EditMessage(ctx, bob.Id, bobChat.Id, msg.Id, &dto.UpdateMessageRequest{Content: "hijack"})
	assert.ErrorIs(t, err, access.ErrMessageNotFound)
}

func TestRegenerateFrom(t *testing.T) {
	ctx := context.Background()
	f := newFactory(t)
	alice := testutil.CreateUser(t, f, "alice@example.com")
	chat := testutil.CreateChat(t, f, alice.Id, "Chat")
	q1 := testutil.CreateMessage(t, f, chat.Id, 0, entity.MessageRoleUser, "q1")
	a1 := testutil.CreateMessage(t, f, chat.Id, 1, entity.MessageRoleAssistant, "a1")
	testutil.CreateMessage(t, f, chat.Id, 2, entity.MessageRoleUser, "q2")
	testutil.CreateMessage(t, f, chat.Id, 3, entity.MessageRoleAssistant, "a2")

	backend := &fakeQA{answer: &qa.Answer{Answer: "fresh", Citations: []qa.PageRef{"4"}}}
	actions := &actionRecorder{}
	m := metrics.New()
	svc := NewMessageService(f, access.NewGate(), backend, m, actions, logger.NewNopLogger())

	got, err := svc.RegenerateFrom(ctx, alice.Id, chat.Id, q1.Id, &dto.RegenerateRequest{Content: "q1 revised"})
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, q1.Id, got.Messages[0].Id)
	assert.Equal(t, "q1 revised", got.Messages[0].Content)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "fresh")
	assert.Equal(t, []string{"4"}, got.Messages[1].Citations)
	assert.Equal(t, []string{"q1 revised"}, backend.questions)
	assert.Equal(t, float64(1), m.QACount("ask", metrics.OutcomeSuccess))

	assert.Equal(t, []chatstate.ActionType{
		chatstate.ActionMessageEdited,
		chatstate.ActionMessagesTruncated,
		chatstate.ActionMessageAppended,
	}, actions.types())

	t.Run("assistant messages cannot be regenerated", func(t *testing.T) {
		_, err := svc.RegenerateFrom(ctx, alice.Id, chat.Id, got.Messages[1].Id, &dto.RegenerateRequest{Content: "x"})
		assert.ErrorIs(t, err, ErrNotUserMessage)
	})

	t.Run("truncated messages are gone", func(t *testing.T) {
		_, err := svc.RegenerateFrom(ctx, alice.Id, chat.Id, a1.Id, &dto.RegenerateRequest{Content: "x"})
		assert.ErrorIs(t, err, access.ErrMessageNotFound)
	})
}
