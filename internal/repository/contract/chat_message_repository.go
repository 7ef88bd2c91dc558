package contract

import (
	"context"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, chatMessage *entity.ChatMessage) error
	DeleteByChatSessionId(ctx context.Context, chatSessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
}
