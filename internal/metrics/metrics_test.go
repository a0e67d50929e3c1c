package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(ctx *fiber.Ctx) error { return ctx.SendString("pong") })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	m.ObserveQA("ask", OutcomeSuccess)
	m.ObserveQA("ask", OutcomeSuccess)
	assert.Equal(t, float64(2), m.QACount("ask", OutcomeSuccess))
	assert.Zero(t, m.QACount("ask", OutcomeFailure))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `docchat_http_requests_total{method="GET",route="/ping",status="200"} 1`)
	assert.Contains(t, string(body), `docchat_qa_backend_calls_total{operation="ask",outcome="success"} 2`)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveQA("ask", OutcomeFailure) })
	assert.Zero(t, m.QACount("ask", OutcomeFailure))
}
