package implementation

import (
	"context"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/mapper"
	"baristabox-be/internal/model"
	"baristabox-be/internal/repository/contract"
	"baristabox-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMessageMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMessageMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, chatMessage *entity.ChatMessage) error {
	m := r.mapper.ToModel(chatMessage)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chatMessage = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) DeleteByChatSessionId(ctx context.Context, chatSessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_session_id = ?", chatSessionId).Delete(&model.ChatMessage{}).Error
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []model.ChatMessage
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]*entity.ChatMessage, 0, len(models))
	for i := range models {
		res = append(res, r.mapper.ToEntity(&models[i]))
	}
	return res, nil
}
