package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"docchat-be/internal/pkg/testutil"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/chatstate"
	"docchat-be/pkg/qa"

	"github.com/google/uuid"
)

type fakeQA struct {
	mu        sync.Mutex
	answer    *qa.Answer
	tokenErr  error
	askErr    error
	uploadErr error
	questions []string
	uploads   []string
}

func (f *fakeQA) MintToken(ctx context.Context) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return "token", nil
}

func (f *fakeQA) Ask(ctx context.Context, question, token string) (*qa.Answer, error) {
	f.mu.Lock()
	f.questions = append(f.questions, question)
	f.mu.Unlock()
	if f.askErr != nil {
		return nil, f.askErr
	}
	if f.answer != nil {
		return f.answer, nil
	}
	return &qa.Answer{Answer: "Answer to " + question}, nil
}

func (f *fakeQA) UploadDocument(ctx context.Context, filename string, content io.Reader, token string) error {
	if _, err := io.ReadAll(content); err != nil {
		return err
	}
	f.mu.Lock()
	f.uploads = append(f.uploads, filename)
	f.mu.Unlock()
	return f.uploadErr
}

type recordedAction struct {
	UserId uuid.UUID
	Action chatstate.Action
}

type actionRecorder struct {
	mu      sync.Mutex
	actions []recordedAction
}

func (r *actionRecorder) PublishAction(ctx context.Context, userId uuid.UUID, action chatstate.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, recordedAction{UserId: userId, Action: action})
}

func (r *actionRecorder) types() []chatstate.ActionType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]chatstate.ActionType, 0, len(r.actions))
	for _, a := range r.actions {
		out = append(out, a.Action.Type)
	}
	return out
}

type observerRecorder struct {
	calls []string
}

func (o *observerRecorder) ObserveQA(operation, outcome string) {
	o.calls = append(o.calls, operation+":"+outcome)
}

type archiveRecorder struct {
	keys []string
	err  error
}

func (a *archiveRecorder) Put(ctx context.Context, key, contentType string, data []byte) error {
	a.keys = append(a.keys, key)
	return a.err
}

var errBackendDown = errors.New("connection refused")

func newFactory(t *testing.T) unitofwork.RepositoryFactory {
	return testutil.NewFactory(t)
}
