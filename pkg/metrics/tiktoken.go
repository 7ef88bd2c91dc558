package metrics

import (
	"github.com/tiktoken-go/tokenizer"
)

// TokenCounter approximates token counts with the GPT-4 encoding for every
// provider. Close enough for dashboards.
type TokenCounter struct {
	codec tokenizer.Codec
}

func NewTokenCounter() *TokenCounter {
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		return &TokenCounter{}
	}
	return &TokenCounter{codec: codec}
}

func (tc *TokenCounter) CountTokens(text string) int {
	if tc.codec == nil {
		// 4 chars ≈ 1 token
		return len(text) / 4
	}
	count, err := tc.codec.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return count
}
