package mapper

import (
	"encoding/json"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/model"

	"gorm.io/datatypes"
)

type ChatSessionMapper struct{}

func NewChatSessionMapper() *ChatSessionMapper {
	return &ChatSessionMapper{}
}

func (m *ChatSessionMapper) ToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	updatedAt := s.UpdatedAt
	return &entity.ChatSession{
		Id:        s.Id,
		Mode:      s.Mode,
		CreatedAt: s.CreatedAt,
		UpdatedAt: &updatedAt,
	}
}

func (m *ChatSessionMapper) ToModel(e *entity.ChatSession) *model.ChatSession {
	if e == nil {
		return nil
	}
	s := &model.ChatSession{
		Id:        e.Id,
		Mode:      e.Mode,
		CreatedAt: e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		s.UpdatedAt = *e.UpdatedAt
	}
	return s
}

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(c.Metadata) > 0 {
		_ = json.Unmarshal(c.Metadata, &metadata)
	}
	return &entity.ChatMessage{
		Id:            c.Id,
		ChatSessionId: c.ChatSessionId,
		Role:          c.Role,
		Chat:          c.Chat,
		Flow:          c.Flow,
		Metadata:      metadata,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(e *entity.ChatMessage) *model.ChatMessage {
	if e == nil {
		return nil
	}
	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}
	return &model.ChatMessage{
		Id:            e.Id,
		ChatSessionId: e.ChatSessionId,
		Role:          e.Role,
		Chat:          e.Chat,
		Flow:          e.Flow,
		Metadata:      metadata,
		CreatedAt:     e.CreatedAt,
	}
}
