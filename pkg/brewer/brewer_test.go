package brewer

import (
	"context"
	"testing"

	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/repository/knowledgetest"
	"baristabox-be/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrewer(t *testing.T, p *llmtest.Provider) *Brewer {
	_, factory := knowledgetest.Open(t)
	return NewBrewer(factory, p, logger.NewNopLogger())
}

func TestExtract(t *testing.T) {
	b := newBrewer(t, &llmtest.Provider{})
	ctx := context.Background()

	tests := []struct {
		name       string
		query      string
		wantBean   string
		wantMethod string
	}{
		{name: "both", query: "How do I brew Ethiopia Yirgacheffe in a V60?", wantBean: "cb_001", wantMethod: "v60"},
		{name: "case insensitive", query: "COLOMBIA SUPREMO french press please", wantBean: "cb_002", wantMethod: "french press"},
		{name: "method only", query: "give me a chemex recipe", wantMethod: "chemex"},
		{name: "bean only", query: "what about sumatra mandheling", wantBean: "cb_003"},
		{name: "first method wins", query: "aeropress or v60 for colombia supremo", wantBean: "cb_002", wantMethod: "v60"},
		{name: "nothing", query: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Extract(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, got.Method)
			if tt.wantBean == "" {
				assert.Nil(t, got.Bean)
				return
			}
			require.NotNil(t, got.Bean)
			assert.Equal(t, tt.wantBean, got.Bean.Id)
		})
	}
}

func TestGetRecipeClarification(t *testing.T) {
	p := &llmtest.Provider{}
	b := newBrewer(t, p)

	assert.Equal(t, ClarificationMessage, b.GetRecipe(context.Background(), "recipe for a V60"))
	assert.Empty(t, p.Calls())
}

func TestGetRecipeNoRecipe(t *testing.T) {
	b := newBrewer(t, &llmtest.Provider{})

	got := b.GetRecipe(context.Background(), "sumatra mandheling with a kalita wave")

	assert.Equal(t, "I'm sorry, I don't have a specific recipe for 'Sumatra Mandheling' with a 'Kalita Wave' right now. I'll ask my expert to add one soon!", got)
}

func TestGetRecipeFeedsRecordVerbatim(t *testing.T) {
	p := &llmtest.Provider{Respond: func(string) (string, error) { return "Certainly! Here is the expert recipe.", nil }}
	b := newBrewer(t, p)

	got := b.GetRecipe(context.Background(), "Recipe for Ethiopia Yirgacheffe with a V60")

	assert.Equal(t, "Certainly! Here is the expert recipe.", got)
	require.Len(t, p.Calls(), 1)
	prompt := p.Calls()[0]
	assert.Contains(t, prompt, `"recipe_id": "br_001"`)
	assert.Contains(t, prompt, `"coffee_grams": 15,`)
	assert.Contains(t, prompt, `"water_temp_c": 94,`)
	assert.Contains(t, prompt, "Total time 2:45.")
}

func TestGetRecipeGeneratorFailure(t *testing.T) {
	b := newBrewer(t, llmtest.Failing())

	assert.Equal(t, ApologyMessage, b.GetRecipe(context.Background(), "colombia supremo french press"))
}

func TestRetrievalContext(t *testing.T) {
	b := newBrewer(t, &llmtest.Provider{})

	lookup, err := b.RetrievalContext(context.Background(), "ethiopia yirgacheffe aeropress")

	require.NoError(t, err)
	require.NotNil(t, lookup.Recipe)
	assert.Equal(t, "br_002", lookup.Recipe.Id)
	assert.Equal(t, 17.0, lookup.Recipe.CoffeeGrams)
	assert.Contains(t, lookup.Context, `"grind_size": "Fine"`)
}
