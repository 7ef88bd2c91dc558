package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "KNOWLEDGE_CHANGED").
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeKnowledgeChanged = "KNOWLEDGE_CHANGED"

// KnowledgeChanged describes one admin mutation. kind names the knowledge
// file family, action is create, update or delete, key identifies the
// record.
func KnowledgeChanged(kind, action, key string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeKnowledgeChanged,
		Data: map[string]interface{}{
			"kind":        kind,
			"action":      action,
			"key":         key,
			"occurred_at": at.Format(time.RFC3339),
		},
		OccurredAt: at,
	}
}
