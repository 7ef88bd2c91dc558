package contract

import (
	"context"

	"baristabox-be/internal/entity"
)

type BeanEmbeddingRepository interface {
	FindByContentHash(ctx context.Context, hash string) (*entity.BeanEmbedding, error)
	Upsert(ctx context.Context, embedding *entity.BeanEmbedding) error
	DeleteByModel(ctx context.Context, model string) error
}
