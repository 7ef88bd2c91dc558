package metrics

import (
	"context"
	"testing"

	"baristabox-be/pkg/embedding/embeddingtest"
	"baristabox-be/pkg/llm"
	"baristabox-be/pkg/llm/llmtest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentLLMCountsRequests(t *testing.T) {
	rec := NewPrometheusRecorder(prometheus.NewRegistry())
	p := llm.Chain(&llmtest.Provider{}, InstrumentLLM(rec, NewTokenCounter(), "fake", "echo"))

	_, err := p.Generate(context.Background(), "recommend me a bright coffee")
	require.NoError(t, err)
	_, err = llm.Chain(llmtest.Failing(), InstrumentLLM(rec, NewTokenCounter(), "fake", "echo")).
		Generate(context.Background(), "x")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.llmRequestsTotal.WithLabelValues("fake", "echo", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.llmRequestsTotal.WithLabelValues("fake", "echo", "error")))
	assert.Greater(t, testutil.ToFloat64(rec.llmTokensTotal.WithLabelValues("fake", "echo", "prompt")), 0.0)
}

func TestInstrumentEmbedding(t *testing.T) {
	rec := NewPrometheusRecorder(prometheus.NewRegistry())
	p := InstrumentEmbedding(rec, &embeddingtest.BagOfWords{})

	_, err := p.Generate(context.Background(), "fruity", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.embeddingRequestsTotal.WithLabelValues("bag-of-words", "RETRIEVAL_QUERY", "success")))
}

func TestTokenCounter(t *testing.T) {
	tc := NewTokenCounter()
	assert.Greater(t, tc.CountTokens("The quick brown fox jumps over the lazy dog"), 0)
	assert.Equal(t, 0, tc.CountTokens(""))
	assert.Equal(t, 2, (&TokenCounter{}).CountTokens("12345678"))
}
