package nats

import (
	"encoding/json"
	"testing"
	"time"

	"docchat-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	occurred := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err := json.Marshal(envelope{
		Type:       events.ChatDeleted,
		Data:       map[string]interface{}{"chat_id": "c-1"},
		OccurredAt: occurred,
	})
	require.NoError(t, err)

	event, err := decode(SubjectPrefix+events.ChatDeleted, data)
	require.NoError(t, err)
	assert.Equal(t, events.ChatDeleted, event.EventType())
	assert.Equal(t, "c-1", event.Payload()["chat_id"])
	assert.True(t, occurred.Equal(event.Timestamp()))
}

func TestDecodeFallsBackToSubject(t *testing.T) {
	event, err := decode(SubjectPrefix+events.UserSignedIn, []byte(`{"data":{"user_id":"u-1"}}`))
	require.NoError(t, err)
	assert.Equal(t, events.UserSignedIn, event.EventType())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decode("events.X", []byte("not json"))
	assert.Error(t, err)
}
