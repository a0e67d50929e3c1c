package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"docchat-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", NewValidationError("title is required"), 400, "title is required"},
		{"unauthorized", NewUnauthorizedError("Unauthorized"), 401, "Unauthorized"},
		{"not found", NewNotFoundError("Chat not found"), 404, "Chat not found"},
		{"conflict is a bad request", NewConflictError("Email already exists"), 400, "Email already exists"},
		{"wrapped app error", fmt.Errorf("ctx: %w", NewNotFoundError("Message not found")), 404, "Message not found"},
		{"internal hides cause", NewInternalError(errors.New("db down")), 500, "Internal server error"},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"), 405, "Method Not Allowed"},
		{"unknown error", errors.New("boom"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Resolve(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler(logger.NewNopLogger())})
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return NewNotFoundError("Chat not found")
	})
	app.Get("/broken", func(ctx *fiber.Ctx) error {
		return errors.New("connection reset")
	})

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/missing", http.StatusNotFound, "Chat not found"},
		{"/broken", http.StatusInternalServerError, "Internal server error"},
		{"/nowhere", http.StatusNotFound, "Cannot GET /nowhere"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var payload map[string]string
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, tt.wantBody, payload["error"])
		})
	}
}
