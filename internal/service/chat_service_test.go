package service

import (
	"context"
	"testing"
	"time"

	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/pkg/testutil"
	"docchat-be/internal/repository/specification"
	"docchat-be/pkg/access"
	"docchat-be/pkg/chatstate"
	"docchat-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFactory(t)
	alice := testutil.CreateUser(t, f, "alice@example.com")
	bob := testutil.CreateUser(t, f, "bob@example.com")

	actions := &actionRecorder{}
	recorder := &testutil.EventRecorder{}
	svc := NewChatService(f, access.NewGate(), actions, recorder, logger.NewNopLogger())

	first, err := svc.CreateChat(ctx, alice.Id, &dto.CreateChatRequest{Title: " First "})
	require.NoError(t, err)
	assert.Equal(t, "First", first.Title)
	assert.Empty(t, first.Messages)

	time.Sleep(5 * time.Millisecond)
	second, err := svc.CreateChat(ctx, alice.Id, &dto.CreateChatRequest{Title: "Second"})
	require.NoError(t, err)

	testutil.CreateMessage(t, f, first.Id, 0, entity.MessageRoleUser, "q")
	testutil.CreateMessage(t, f, first.Id, 1, entity.MessageRoleAssistant, "a")

	chats, err := svc.ListChats(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, second.Id, chats[0].Id, "newest first")
	require.Len(t, chats[1].Messages, 2)
	assert.Equal(t, "q", chats[1].Messages[0].Content)

	bobChats, err := svc.ListChats(ctx, bob.Id)
	require.NoError(t, err)
	assert.Empty(t, bobChats)

	t.Run("rename keeps messages", func(t *testing.T) {
		renamed, err := svc.RenameChat(ctx, alice.Id, first.Id, &dto.UpdateChatRequest{Title: "Renamed"})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", renamed.Title)
		assert.Len(t, renamed.Messages, 2)
	})

	t.Run("other users cannot see or change the chat", func(t *testing.T) {
		_, err := svc.GetChat(ctx, bob.Id, first.Id)
		assert.ErrorIs(t, err, access.ErrChatNotFound)
		_, err = svc.RenameChat(ctx, bob.Id, first.Id, &dto.UpdateChatRequest{Title: "Mine"})
		assert.ErrorIs(t, err, access.ErrChatNotFound)
		assert.ErrorIs(t, svc.DeleteChat(ctx, bob.Id, first.Id), access.ErrChatNotFound)

		got, err := svc.GetChat(ctx, alice.Id, first.Id)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
	})

	t.Run("delete cascades to messages", func(t *testing.T) {
		require.NoError(t, svc.DeleteChat(ctx, alice.Id, first.Id))

		_, err := svc.GetChat(ctx, alice.Id, first.Id)
		assert.ErrorIs(t, err, access.ErrChatNotFound)

		count, err := f.NewUnitOfWork(ctx).ChatMessageRepository().Count(ctx, specification.ByChatID{ChatID: first.Id})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	assert.Equal(t, []chatstate.ActionType{
		chatstate.ActionChatCreated,
		chatstate.ActionChatCreated,
		chatstate.ActionChatRenamed,
		chatstate.ActionChatDeleted,
	}, actions.types())
	assert.Equal(t, []string{events.ChatDeleted}, recorder.Types())
}
