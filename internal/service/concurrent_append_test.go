package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/pkg/testutil"
	"docchat-be/internal/repository/specification"
	"docchat-be/pkg/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentWritersGetDistinctPositions(t *testing.T) {
	ctx := context.Background()
	f := newFactory(t)
	alice := testutil.CreateUser(t, f, "alice@example.com")
	chat := testutil.CreateChat(t, f, alice.Id, "Busy")

	gate := access.NewGate()
	actions := &actionRecorder{}
	messages := NewMessageService(f, gate, &fakeQA{}, nil, actions, logger.NewNopLogger())
	assistant := NewAssistantService(f, gate, &fakeQA{}, nil, nil, actions, nil, logger.NewNopLogger())

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, 2*writers)
	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := messages.AppendMessage(ctx, alice.Id, chat.Id, &dto.CreateMessageRequest{Role: "user", Content: fmt.Sprintf("note %d", i)})
			errs <- err
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := assistant.Ask(ctx, alice.Id, chat.Id, &dto.AskRequest{Question: fmt.Sprintf("question %d", i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	chats := NewChatService(f, gate, NewNopPublisherService(), nil, logger.NewNopLogger())
	got, err := chats.GetChat(ctx, alice.Id, chat.Id)
	require.NoError(t, err)
	require.Len(t, got.Messages, 3*writers)

	stored, err := f.NewUnitOfWork(ctx).ChatMessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chat.Id},
		specification.InConversationOrder{},
	)
	require.NoError(t, err)
	for i, m := range stored {
		assert.Equal(t, i, m.Position)
	}

	// each Ask writes its question and answer next to each other
	for i, m := range got.Messages {
		if m.Role == "assistant" {
			require.Greater(t, i, 0)
			assert.Equal(t, "user", got.Messages[i-1].Role)
		}
	}
}
