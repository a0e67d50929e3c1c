package controller

import (
	"errors"

	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"
	"docchat-be/pkg/access"
	"docchat-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

const (
	chatNotFound    = "Chat not found"
	messageNotFound = "Message not found"
)

// translateError maps domain errors to HTTP errors. Anything unknown becomes a 500.
func translateError(err error) error {
	var appErr *serverutils.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, access.ErrChatNotFound):
		return serverutils.NewNotFoundError(chatNotFound)
	case errors.Is(err, access.ErrMessageNotFound):
		return serverutils.NewNotFoundError(messageNotFound)
	case errors.Is(err, service.ErrEmailTaken):
		return serverutils.NewConflictError("Email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		return serverutils.NewUnauthorizedError("Invalid credentials")
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, session.ErrInvalidSession):
		return serverutils.NewUnauthorizedError("Unauthorized")
	case errors.Is(err, service.ErrInvalidRole):
		return serverutils.NewValidationError("role must be one of: user assistant")
	case errors.Is(err, service.ErrNotUserMessage):
		return serverutils.NewValidationError("Only user messages can be regenerated")
	default:
		return serverutils.NewInternalError(err)
	}
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return serverutils.NewValidationError("Invalid request body")
	}
	return nil
}
