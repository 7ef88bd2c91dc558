package memory

import (
	"context"

	"baristabox-be/pkg/embedding"

	"github.com/patrickmn/go-cache"
)

// EmbeddingCache keeps vectors for the life of the process. Used when no
// database is configured.
type EmbeddingCache struct {
	cache *cache.Cache
}

func NewEmbeddingCache() embedding.Cache {
	return &EmbeddingCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (c *EmbeddingCache) Lookup(ctx context.Context, key string) ([]float32, bool, error) {
	if x, found := c.cache.Get(key); found {
		return append([]float32(nil), x.([]float32)...), true, nil
	}
	return nil, false, nil
}

func (c *EmbeddingCache) Store(ctx context.Context, key, model, text string, vector []float32) error {
	c.cache.Set(key, append([]float32(nil), vector...), cache.NoExpiration)
	return nil
}
