package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Chat          string
	Flow          string
	Metadata      map[string]interface{}
	CreatedAt     time.Time
}
