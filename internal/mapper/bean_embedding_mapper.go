package mapper

import (
	"baristabox-be/internal/entity"
	"baristabox-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type BeanEmbeddingMapper struct{}

func NewBeanEmbeddingMapper() *BeanEmbeddingMapper {
	return &BeanEmbeddingMapper{}
}

func (m *BeanEmbeddingMapper) ToEntity(e *model.BeanEmbedding) *entity.BeanEmbedding {
	if e == nil {
		return nil
	}
	return &entity.BeanEmbedding{
		ContentHash: e.ContentHash,
		Model:       e.Model,
		Content:     e.Content,
		Value:       e.EmbeddingValue.Slice(),
		CreatedAt:   e.CreatedAt,
	}
}

func (m *BeanEmbeddingMapper) ToModel(e *entity.BeanEmbedding) *model.BeanEmbedding {
	if e == nil {
		return nil
	}
	return &model.BeanEmbedding{
		ContentHash:    e.ContentHash,
		Model:          e.Model,
		Content:        e.Content,
		EmbeddingValue: pgvector.NewVector(e.Value),
		CreatedAt:      e.CreatedAt,
	}
}
