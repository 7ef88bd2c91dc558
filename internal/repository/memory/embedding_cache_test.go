package memory

import (
	"context"
	"testing"

	"baristabox-be/pkg/embedding"
	"baristabox-be/pkg/embedding/embeddingtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedProviderReusesDocumentVectors(t *testing.T) {
	ctx := context.Background()
	inner := &embeddingtest.BagOfWords{}
	provider := embedding.NewCachedProvider(inner, NewEmbeddingCache())

	first, err := provider.Generate(ctx, "jasmine and bergamot", embedding.TaskRetrievalDocument)
	require.NoError(t, err)
	second, err := provider.Generate(ctx, "jasmine and bergamot", embedding.TaskRetrievalDocument)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.Calls())

	_, err = provider.Generate(ctx, "jasmine and bergamot", embedding.TaskRetrievalQuery)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.Calls(), "query vectors bypass the cache")
}

func TestEmbeddingCacheCopiesVectors(t *testing.T) {
	ctx := context.Background()
	c := NewEmbeddingCache()
	vec := []float32{1, 2, 3}
	require.NoError(t, c.Store(ctx, "k", "m", "text", vec))
	vec[0] = 9

	got, ok, err := c.Lookup(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, got)

	_, ok, err = c.Lookup(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
