package factory

import (
	"context"
	"fmt"

	"baristabox-be/pkg/llm"
	"baristabox-be/pkg/llm/anthropic"
	"baristabox-be/pkg/llm/gemini"
	"baristabox-be/pkg/llm/ollama"
	"baristabox-be/pkg/llm/openai"
)

type Settings struct {
	Provider string // "gemini" | "ollama" | "openai" | "anthropic"
	Model    string
	BaseURL  string // ollama only
	APIKey   string
}

func NewLLMProvider(ctx context.Context, s Settings) (llm.LLMProvider, error) {
	switch s.Provider {
	case "ollama":
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.Model)
	case "gemini":
		if s.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(ctx, s.APIKey, s.Model)
	case "openai":
		if s.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(s.APIKey, s.Model), nil
	case "anthropic":
		if s.APIKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an API key")
		}
		return anthropic.NewAnthropicProvider(s.APIKey, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
