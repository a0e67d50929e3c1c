package service

import (
	"context"

	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/events"
)

// publishEvent sends a domain event when a publisher is configured. Failures are only logged.
func publishEvent(ctx context.Context, pub events.Publisher, log logger.ILogger, eventType string, data map[string]interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, events.New(eventType, data)); err != nil {
		log.Warn("Events", "Failed to publish event", map[string]interface{}{"type": eventType, "error": err.Error()})
	}
}
