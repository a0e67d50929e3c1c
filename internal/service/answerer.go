package service

import (
	"context"
	"io"

	"docchat-be/internal/metrics"
	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/qa"
)

// QAClient is the external document QA backend. *qa.Client implements it.
type QAClient interface {
	MintToken(ctx context.Context) (string, error)
	Ask(ctx context.Context, question, token string) (*qa.Answer, error)
	UploadDocument(ctx context.Context, filename string, content io.Reader, token string) error
}

type QAObserver interface {
	ObserveQA(operation, outcome string)
}

type reply struct {
	Content   string
	Citations []string
	Failed    bool
}

// answerer turns a question into assistant message text. Backend failures
// become the troubleshooting message instead of an error.
type answerer struct {
	client   QAClient
	observer QAObserver
	logger   logger.ILogger
}

func newAnswerer(client QAClient, observer QAObserver, log logger.ILogger) *answerer {
	return &answerer{client: client, observer: observer, logger: log}
}

func (a *answerer) answer(ctx context.Context, question string) reply {
	token, err := a.client.MintToken(ctx)
	if err != nil {
		return a.fail("token", err)
	}

	ans, err := a.client.Ask(ctx, question, token)
	if err != nil {
		return a.fail("ask", err)
	}

	a.observe("ask", metrics.OutcomeSuccess)
	return reply{
		Content:   qa.FormatAnswer(ans),
		Citations: qa.CitationStrings(ans.Citations),
	}
}

func (a *answerer) fail(operation string, err error) reply {
	a.logger.Warn("Answerer", "QA backend call failed", map[string]interface{}{"operation": operation, "error": err.Error()})
	a.observe(operation, metrics.OutcomeFailure)
	return reply{Content: qa.FailureMessage(err), Failed: true}
}

func (a *answerer) observe(operation, outcome string) {
	if a.observer != nil {
		a.observer.ObserveQA(operation, outcome)
	}
}
