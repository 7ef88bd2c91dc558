package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	Mode      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
