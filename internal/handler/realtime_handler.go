package handler

import (
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/pkg/serverutils"
	internalWS "docchat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RealtimeHandler streams chat store actions to the signed in user.
type RealtimeHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewRealtimeHandler(hub *internalWS.Hub, log logger.ILogger) *RealtimeHandler {
	return &RealtimeHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *RealtimeHandler) RegisterRoutes(r fiber.Router, requireSession fiber.Handler) {
	r.Get("/ws", requireSession, h.ServeWs)
}

// ServeWs runs after the session middleware, so the cookie has already been checked.
func (h *RealtimeHandler) ServeWs(c *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(c)
	if err != nil {
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("RealtimeHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("RealtimeHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}
