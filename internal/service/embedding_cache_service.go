package service

import (
	"context"
	"time"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/repository/contract"
	"baristabox-be/pkg/embedding"
)

// embeddingCacheService persists description vectors in pgvector so a
// restart does not re-embed the whole catalogue.
type embeddingCacheService struct {
	repo contract.BeanEmbeddingRepository
}

func NewEmbeddingCacheService(repo contract.BeanEmbeddingRepository) embedding.Cache {
	return &embeddingCacheService{repo: repo}
}

func (s *embeddingCacheService) Lookup(ctx context.Context, key string) ([]float32, bool, error) {
	e, err := s.repo.FindByContentHash(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if e == nil {
		return nil, false, nil
	}
	return e.Value, true, nil
}

func (s *embeddingCacheService) Store(ctx context.Context, key, model, text string, vector []float32) error {
	return s.repo.Upsert(ctx, &entity.BeanEmbedding{
		ContentHash: key,
		Model:       model,
		Content:     text,
		Value:       vector,
		CreatedAt:   time.Now(),
	})
}
