package sommelier

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"baristabox-be/internal/entity"
	"baristabox-be/pkg/embedding"
)

// Describe is the text embedded for a bean.
func Describe(bean *entity.Bean) string {
	return fmt.Sprintf("%s. Tasting notes: %s. Best for those looking for something %s.",
		bean.Name, bean.TastingNotes, strings.Join(bean.ExpertTags, ", "))
}

// FlavorMap is an immutable snapshot of every bean and its description
// vector, index-aligned with store order.
type FlavorMap struct {
	beans   []*entity.Bean
	vectors [][]float32
	builtAt time.Time
}

func buildFlavorMap(ctx context.Context, embedder embedding.EmbeddingProvider, beans []*entity.Bean) (*FlavorMap, error) {
	m := &FlavorMap{
		beans:   beans,
		vectors: make([][]float32, len(beans)),
		builtAt: time.Now(),
	}
	for i, bean := range beans {
		vec, err := embedder.Generate(ctx, Describe(bean), embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("failed to embed bean %s: %w", bean.Id, err)
		}
		m.vectors[i] = vec
	}
	return m, nil
}

func (m *FlavorMap) Len() int {
	return len(m.beans)
}

func (m *FlavorMap) BuiltAt() time.Time {
	return m.builtAt
}

// Match is one ranked bean.
type Match struct {
	Bean  *entity.Bean
	Score float64
}

// rank orders every bean by descending similarity to query. Equal scores
// keep store order.
func (m *FlavorMap) rank(query []float32, k int) []Match {
	matches := make([]Match, len(m.beans))
	for i, bean := range m.beans {
		matches[i] = Match{Bean: bean, Score: embedding.Cosine(query, m.vectors[i])}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches
}
