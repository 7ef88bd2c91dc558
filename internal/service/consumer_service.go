package service

import (
	"context"
	"encoding/json"

	"baristabox-be/internal/dto"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/pkg/events"
	pktNats "baristabox-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const consumerModule = "ConsumerService"

// EventSubscriber receives events from other replicas. *nats.Subscriber
// implements it.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	remote      EventSubscriber
	durableName string
	index       IIndexService
	logger      logger.ILogger
}

// NewConsumerService marks the indexes stale whenever knowledge changes,
// locally or, when remote is non-nil, on another replica.
func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	remote EventSubscriber,
	durableName string,
	index IIndexService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		remote:      remote,
		durableName: durableName,
		index:       index,
		logger:      logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	if cs.remote != nil {
		if err := cs.remote.Subscribe(ctx, events.TypeKnowledgeChanged, cs.durableName, cs.processEvent); err != nil {
			cs.logger.Warn(consumerModule, "Failed to subscribe to remote knowledge events", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.KnowledgeChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	cs.index.MarkStale(payload.Kind)
	msg.Ack()
}

func (cs *consumerService) processEvent(ctx context.Context, event events.Event) error {
	kind, _ := event.Payload()["kind"].(string)
	if kind == "" {
		kind = "unknown"
	}
	cs.index.MarkStale(kind)
	return nil
}
