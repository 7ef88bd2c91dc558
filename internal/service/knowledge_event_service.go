package service

import (
	"context"
	"encoding/json"
	"time"

	"baristabox-be/internal/dto"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/pkg/events"
)

const eventsModule = "KnowledgeEvents"

// EventPublisher sends events off-process. *nats.Publisher implements it.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IKnowledgeEventService announces admin mutations. Delivery failures are
// logged; the mutation has already been written.
type IKnowledgeEventService interface {
	Changed(ctx context.Context, kind, action, key string)
}

type knowledgeEventService struct {
	local  IPublisherService
	remote EventPublisher
	logger logger.ILogger
}

// NewKnowledgeEventService publishes in-process through local and, when
// remote is non-nil, to the NATS bus.
func NewKnowledgeEventService(local IPublisherService, remote EventPublisher, logger logger.ILogger) IKnowledgeEventService {
	return &knowledgeEventService{
		local:  local,
		remote: remote,
		logger: logger,
	}
}

func (s *knowledgeEventService) Changed(ctx context.Context, kind, action, key string) {
	now := time.Now()
	payload, err := json.Marshal(dto.KnowledgeChangedMessage{
		Kind:       kind,
		Action:     action,
		Key:        key,
		OccurredAt: now,
	})
	if err == nil {
		err = s.local.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Warn(eventsModule, "Failed to publish knowledge change locally", map[string]interface{}{"kind": kind, "key": key, "error": err.Error()})
	}

	if s.remote == nil {
		return
	}
	if err := s.remote.Publish(ctx, events.KnowledgeChanged(kind, action, key, now)); err != nil {
		s.logger.Warn(eventsModule, "Failed to publish knowledge change to NATS", map[string]interface{}{"kind": kind, "key": key, "error": err.Error()})
	}
}
