package classifier

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"baristabox-be/pkg/embedding"
)

const DefaultNeighbours = 5

type index struct {
	labels  []string
	vectors [][]float32
}

// EmbeddingClassifier labels text by majority vote of its k nearest
// training examples. A tied vote goes to the label holding the single
// closest example.
type EmbeddingClassifier struct {
	embedder embedding.EmbeddingProvider
	k        int
	index    atomic.Pointer[index]
}

func NewEmbeddingClassifier(embedder embedding.EmbeddingProvider, k int) *EmbeddingClassifier {
	if k <= 0 {
		k = DefaultNeighbours
	}
	return &EmbeddingClassifier{embedder: embedder, k: k}
}

// Train embeds every example and replaces the index. On error the previous
// index stays in place.
func (c *EmbeddingClassifier) Train(ctx context.Context, examples []Example) error {
	idx := &index{
		labels:  make([]string, 0, len(examples)),
		vectors: make([][]float32, 0, len(examples)),
	}
	for _, ex := range examples {
		vec, err := c.embedder.Generate(ctx, ex.Text, embedding.TaskClassification)
		if err != nil {
			return fmt.Errorf("failed to embed example %q: %w", ex.Text, err)
		}
		idx.labels = append(idx.labels, ex.Label)
		idx.vectors = append(idx.vectors, vec)
	}
	c.index.Store(idx)
	return nil
}

func (c *EmbeddingClassifier) Size() int {
	if idx := c.index.Load(); idx != nil {
		return len(idx.labels)
	}
	return 0
}

func (c *EmbeddingClassifier) Classify(ctx context.Context, text string) (string, error) {
	idx := c.index.Load()
	if idx == nil || len(idx.labels) == 0 {
		return "", ErrNotTrained
	}
	vec, err := c.embedder.Generate(ctx, text, embedding.TaskClassification)
	if err != nil {
		return "", fmt.Errorf("failed to embed input: %w", err)
	}

	type neighbour struct {
		label string
		score float64
	}
	neighbours := make([]neighbour, len(idx.labels))
	for i := range idx.labels {
		neighbours[i] = neighbour{label: idx.labels[i], score: embedding.Cosine(vec, idx.vectors[i])}
	}
	sort.SliceStable(neighbours, func(i, j int) bool {
		return neighbours[i].score > neighbours[j].score
	})
	if len(neighbours) > c.k {
		neighbours = neighbours[:c.k]
	}

	// neighbours is sorted, so the first label to reach the top count is
	// also the one with the closest example.
	votes := make(map[string]int)
	best, bestVotes := "", 0
	for _, n := range neighbours {
		votes[n.label]++
	}
	for _, n := range neighbours {
		if votes[n.label] > bestVotes {
			best, bestVotes = n.label, votes[n.label]
		}
	}
	return best, nil
}
