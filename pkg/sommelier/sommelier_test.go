package sommelier

import (
	"context"
	"errors"
	"testing"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/repository/knowledgetest"
	"baristabox-be/internal/repository/unitofwork"
	"baristabox-be/pkg/embedding/embeddingtest"
	"baristabox-be/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSommelier(t *testing.T, p *llmtest.Provider) (*Sommelier, unitofwork.RepositoryFactory, *embeddingtest.BagOfWords) {
	_, factory := knowledgetest.Open(t)
	embedder := &embeddingtest.BagOfWords{}
	s := NewSommelier(factory, embedder, p, logger.NewNopLogger())
	require.NoError(t, s.Rebuild(context.Background()))
	return s, factory, embedder
}

func ids(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Bean.Id
	}
	return out
}

func TestDescribe(t *testing.T) {
	bean := &entity.Bean{
		Name:         "Kenya AA",
		TastingNotes: "Blackcurrant and tomato",
		ExpertTags:   []string{"Bright", "Complex"},
	}
	assert.Equal(t, "Kenya AA. Tasting notes: Blackcurrant and tomato. Best for those looking for something Bright, Complex.", Describe(bean))
}

func TestTopMatches(t *testing.T) {
	s, _, _ := newSommelier(t, &llmtest.Provider{})
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		first string
	}{
		{name: "floral", query: "something floral with jasmine and lemon", first: "cb_001"},
		{name: "earthy", query: "earthy dark chocolate with a heavy body", first: "cb_003"},
		{name: "nutty", query: "caramel and nutty, a classic", first: "cb_002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := s.TopMatches(ctx, tt.query, DefaultTopK)
			require.NoError(t, err)
			require.Len(t, matches, 3)
			assert.Equal(t, tt.first, matches[0].Bean.Id)
			assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
			assert.GreaterOrEqual(t, matches[1].Score, matches[2].Score)
		})
	}
}

func TestTopMatchesDeterministic(t *testing.T) {
	s, _, _ := newSommelier(t, &llmtest.Provider{})
	ctx := context.Background()

	first, err := s.TopMatches(ctx, "???", 2)
	require.NoError(t, err)
	second, err := s.TopMatches(ctx, "???", 2)
	require.NoError(t, err)

	assert.Equal(t, ids(first), ids(second))
	// An empty query vector scores every bean zero, so store order decides.
	assert.Equal(t, []string{"cb_001", "cb_002"}, ids(first))
}

func TestGetRecommendationPrompt(t *testing.T) {
	p := &llmtest.Provider{Respond: func(string) (string, error) { return "Try the Yirgacheffe!", nil }}
	s, _, _ := newSommelier(t, p)

	got := s.GetRecommendation(context.Background(), "bright and floral")

	assert.Equal(t, "Try the Yirgacheffe!", got)
	require.Len(t, p.Calls(), 1)
	assert.Contains(t, p.Calls()[0], `"bright and floral"`)
	assert.Contains(t, p.Calls()[0], `"id": "cb_001"`)
}

func TestGetRecommendationFailures(t *testing.T) {
	t.Run("generator", func(t *testing.T) {
		s, _, _ := newSommelier(t, llmtest.Failing())
		assert.Equal(t, ApologyMessage, s.GetRecommendation(context.Background(), "fruity"))
	})

	t.Run("embedder", func(t *testing.T) {
		s, _, embedder := newSommelier(t, &llmtest.Provider{})
		embedder.Err = errors.New("embedding service down")
		assert.Equal(t, ApologyMessage, s.GetRecommendation(context.Background(), "fruity"))
	})
}

func TestEmptyCatalogue(t *testing.T) {
	_, factory := knowledgetest.Open(t)
	ctx := context.Background()
	repo := factory.NewUnitOfWork(ctx).BeanRepository()
	for _, id := range []string{"cb_001", "cb_002", "cb_003"} {
		require.NoError(t, repo.Delete(ctx, id))
	}

	s := NewSommelier(factory, &embeddingtest.BagOfWords{}, &llmtest.Provider{}, logger.NewNopLogger())

	assert.Equal(t, EmptyCatalogueMessage, s.GetRecommendation(ctx, "anything"))
}

func TestRebuildPicksUpNewBeans(t *testing.T) {
	s, factory, _ := newSommelier(t, &llmtest.Provider{})
	ctx := context.Background()

	require.NoError(t, factory.NewUnitOfWork(ctx).BeanRepository().Create(ctx, &entity.Bean{
		Id:           "cb_004",
		Name:         "Kenya AA",
		TastingNotes: "blackcurrant tomato",
		ExpertTags:   []string{"Complex"},
	}))

	before, err := s.TopMatches(ctx, "blackcurrant tomato", 1)
	require.NoError(t, err)
	assert.NotEqual(t, "cb_004", before[0].Bean.Id)

	require.NoError(t, s.Rebuild(ctx))
	after, err := s.TopMatches(ctx, "blackcurrant tomato", 1)
	require.NoError(t, err)
	assert.Equal(t, "cb_004", after[0].Bean.Id)
}

func TestTopMatchesNonPositiveK(t *testing.T) {
	s, _, _ := newSommelier(t, &llmtest.Provider{})
	ctx := context.Background()

	for _, k := range []int{-5, -1, 0} {
		matches, err := s.TopMatches(ctx, "earthy dark chocolate", k)
		require.NoError(t, err, k)
		assert.Len(t, matches, DefaultTopK, k)
	}

	one, err := s.TopMatches(ctx, "earthy dark chocolate", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"cb_003"}, ids(one))
}
