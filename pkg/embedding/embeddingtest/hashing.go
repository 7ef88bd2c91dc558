// Package embeddingtest provides a deterministic embedder for tests.
package embeddingtest

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"unicode"

	"baristabox-be/pkg/embedding"
)

const dimensions = 256

// BagOfWords hashes lower-cased word tokens into a fixed-size vector, so
// texts sharing words are close under cosine similarity.
type BagOfWords struct {
	mu    sync.Mutex
	Err   error
	calls int
}

var _ embedding.EmbeddingProvider = &BagOfWords{}

func (b *BagOfWords) Model() string {
	return "bag-of-words"
}

func (b *BagOfWords) Generate(ctx context.Context, text string, taskType embedding.TaskType) ([]float32, error) {
	b.mu.Lock()
	b.calls++
	err := b.Err
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}

	vec := make([]float32, dimensions)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		vec[h.Sum32()%dimensions]++
	}
	return embedding.Normalize(vec), nil
}

func (b *BagOfWords) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}
