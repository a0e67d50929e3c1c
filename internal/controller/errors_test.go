package controller

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"
	"docchat-be/pkg/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "email taken", err: service.ErrEmailTaken, wantStatus: http.StatusBadRequest, wantMessage: "Email already exists"},
		{name: "bad credentials", err: fmt.Errorf("signin: %w", service.ErrInvalidCredentials), wantStatus: http.StatusUnauthorized, wantMessage: "Invalid credentials"},
		{name: "foreign chat", err: access.ErrChatNotFound, wantStatus: http.StatusNotFound, wantMessage: "Chat not found"},
		{name: "unexpected", err: errors.New("disk full"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *serverutils.AppError
			require.True(t, errors.As(translateError(tt.err), &appErr))
			assert.Equal(t, tt.wantStatus, appErr.Status)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, appErr.Message)
			}
		})
	}
}
