package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
)

// Cache stores vectors by content key.
type Cache interface {
	Lookup(ctx context.Context, key string) ([]float32, bool, error)
	Store(ctx context.Context, key, model, text string, vector []float32) error
}

// CachedProvider serves document and classification vectors from a Cache,
// falling back to the wrapped provider on a miss. Query vectors are never
// cached.
type CachedProvider struct {
	next  EmbeddingProvider
	cache Cache
}

func NewCachedProvider(next EmbeddingProvider, cache Cache) EmbeddingProvider {
	return &CachedProvider{next: next, cache: cache}
}

// CacheKey identifies the vector a given model produces for text.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (p *CachedProvider) Model() string {
	return p.next.Model()
}

func (p *CachedProvider) Generate(ctx context.Context, text string, taskType TaskType) ([]float32, error) {
	if taskType == TaskRetrievalQuery {
		return p.next.Generate(ctx, text, taskType)
	}

	key := CacheKey(p.next.Model(), text)
	if vec, ok, err := p.cache.Lookup(ctx, key); err != nil {
		log.Printf("[WARN] embedding cache lookup failed: %v", err)
	} else if ok {
		return vec, nil
	}

	vec, err := p.next.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	if err := p.cache.Store(ctx, key, p.next.Model(), text, vec); err != nil {
		log.Printf("[WARN] embedding cache store failed: %v", err)
	}
	return vec, nil
}
