package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// OllamaProvider implements EmbeddingProvider for local Ollama models (e.g., nomic-embed-text)
type OllamaProvider struct {
	client *api.Client
	model  string
}

func NewOllamaProvider(baseURL string, model string) (EmbeddingProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url %q: %w", baseURL, err)
	}
	return &OllamaProvider{
		client: api.NewClient(parsedURL, http.DefaultClient),
		model:  model,
	}, nil
}

func (p *OllamaProvider) Model() string {
	return p.model
}

func (p *OllamaProvider) Generate(ctx context.Context, text string, taskType TaskType) ([]float32, error) {
	resp, err := p.client.Embed(ctx, &api.EmbedRequest{
		Model: p.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed failed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("ollama returned no embedding")
	}
	// Cosine distance in pgvector requires normalized vectors (magnitude = 1)
	return normalizeVector(resp.Embeddings[0]), nil
}
