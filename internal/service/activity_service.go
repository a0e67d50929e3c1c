package service

import (
	"context"
	"strings"

	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/events"
	pktNats "docchat-be/pkg/nats"
)

// EventSubscriber is satisfied by the NATS subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

// ActivityService writes every domain event to the activity log.
type ActivityService struct {
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewActivityService(sub EventSubscriber, log logger.ILogger) *ActivityService {
	return &ActivityService{
		subscriber: sub,
		logger:     log,
	}
}

func (s *ActivityService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+">", "activity-log-worker", s.HandleEvent); err != nil {
		s.logger.Error("ActivityService", "Failed to start activity subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("ActivityService", "Activity service started", nil)
	return nil
}

func (s *ActivityService) HandleEvent(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"type":        strings.TrimPrefix(event.EventType(), pktNats.SubjectPrefix),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		// never copy credentials into the activity log
		if k == "password" || k == "password_hash" {
			continue
		}
		details[k] = v
	}
	s.logger.Info("Activity", "Domain event", details)
	return nil
}
