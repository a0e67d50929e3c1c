package serverutils

import (
	"errors"

	"docchat-be/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalUserID    = "user_id"
	LocalSessionID = "session_id"
)

// SessionMiddleware admits requests carrying a live session cookie.
func SessionMiddleware(manager *session.Manager) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		identity, err := manager.Validate(ctx.UserContext(), ctx.Cookies(manager.CookieName()))
		if err != nil {
			if errors.Is(err, session.ErrInvalidSession) {
				return NewUnauthorizedError("Unauthorized")
			}
			return NewInternalError(err)
		}

		ctx.Locals(LocalUserID, identity.UserId)
		ctx.Locals(LocalSessionID, identity.SessionId)
		return ctx.Next()
	}
}

func CurrentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := ctx.Locals(LocalUserID).(uuid.UUID)
	if !ok || userId == uuid.Nil {
		return uuid.Nil, NewUnauthorizedError("Unauthorized")
	}
	return userId, nil
}

// ParamUUID reads a path parameter. Malformed ids cannot name an owned row,
// so they are reported as notFound.
func ParamUUID(ctx *fiber.Ctx, name string, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, NewNotFoundError(notFound)
	}
	return id, nil
}
