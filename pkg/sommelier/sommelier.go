// Package sommelier recommends beans by semantic similarity between the
// user's taste description and each bean's flavor profile.
package sommelier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"baristabox-be/internal/mapper"
	"baristabox-be/internal/model"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/repository/unitofwork"
	"baristabox-be/pkg/embedding"
	"baristabox-be/pkg/llm"
)

const module = "CoffeeSommelier"

const DefaultTopK = 3

const (
	ApologyMessage        = "I'm having a little trouble thinking of a recommendation right now. Please try again in a moment."
	EmptyCatalogueMessage = "I don't have any coffees in my catalogue yet. Please check back once some beans have been added!"
)

type Sommelier struct {
	uowFactory  unitofwork.RepositoryFactory
	embedder    embedding.EmbeddingProvider
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	mapper      *mapper.BeanMapper

	flavorMap atomic.Pointer[FlavorMap]
}

// NewSommelier does not embed anything; call Rebuild once at startup.
func NewSommelier(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider, llmProvider llm.LLMProvider, logger logger.ILogger) *Sommelier {
	return &Sommelier{
		uowFactory:  uowFactory,
		embedder:    embedder,
		llmProvider: llmProvider,
		logger:      logger,
		mapper:      mapper.NewBeanMapper(),
	}
}

// Rebuild embeds the current catalogue and swaps the new map in. The old
// map keeps serving until the swap, and stays if the rebuild fails.
func (s *Sommelier) Rebuild(ctx context.Context) error {
	beans, err := s.uowFactory.NewUnitOfWork(ctx).BeanRepository().FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load beans: %w", err)
	}
	m, err := buildFlavorMap(ctx, s.embedder, beans)
	if err != nil {
		return err
	}
	s.flavorMap.Store(m)
	s.logger.Info(module, "Flavor map built", map[string]interface{}{"beans": m.Len(), "model": s.embedder.Model()})
	return nil
}

func (s *Sommelier) current(ctx context.Context) (*FlavorMap, error) {
	if m := s.flavorMap.Load(); m != nil {
		return m, nil
	}
	if err := s.Rebuild(ctx); err != nil {
		return nil, err
	}
	return s.flavorMap.Load(), nil
}

// TopMatches returns at most k beans, most similar first. A k below one
// means DefaultTopK.
func (s *Sommelier) TopMatches(ctx context.Context, query string, k int) ([]Match, error) {
	if k < 1 {
		k = DefaultTopK
	}
	m, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if m.Len() == 0 {
		return []Match{}, nil
	}
	vec, err := s.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return m.rank(vec, k), nil
}

func (s *Sommelier) GetRecommendation(ctx context.Context, query string) string {
	matches, err := s.TopMatches(ctx, query, DefaultTopK)
	if err != nil {
		s.logger.Error(module, "Semantic search failed", map[string]interface{}{"error": err.Error()})
		return ApologyMessage
	}
	if len(matches) == 0 {
		return EmptyCatalogueMessage
	}

	records := make([]*model.BeanRecord, len(matches))
	for i, match := range matches {
		records[i] = s.mapper.ToModel(match.Bean)
	}
	knowledge, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.logger.Error(module, "Failed to encode matches", map[string]interface{}{"error": err.Error()})
		return ApologyMessage
	}

	s.logger.Debug(module, "Top matches", map[string]interface{}{
		"first": matches[0].Bean.Id,
		"score": matches[0].Score,
	})
	out, err := s.llmProvider.Generate(ctx, recommendationPrompt(query, string(knowledge)))
	if err != nil {
		s.logger.Error(module, "Generator call failed", map[string]interface{}{"error": err.Error()})
		return ApologyMessage
	}
	return out
}

func recommendationPrompt(query, knowledge string) string {
	return fmt.Sprintf(`You are 'The Coffee Sommelier,' a friendly, passionate, and knowledgeable AI coffee expert.
Your goal is to give a personalized coffee recommendation to the user.

Follow these rules strictly:
1. Base your recommendation ONLY on the JSON data of the top matching coffees I provide below.
2. Start with a friendly and engaging opening.
3. Recommend the #1 top match to the user. Explain WHY it's a great fit by connecting its 'tasting_notes' and 'expert_tags' directly to the user's query. Be specific.
4. Briefly mention one or two of the other top matches as alternative options.
5. Keep your response concise, persuasive, and easy to read.

--- USER's PREFERENCE ---
"%s"

--- TOP MATCHING COFFEES (Your knowledge base) ---
%s
--- END OF KNOWLEDGE BASE ---`, query, knowledge)
}

// Size is the number of beans in the current flavor map.
func (s *Sommelier) Size() int {
	if m := s.flavorMap.Load(); m != nil {
		return m.Len()
	}
	return 0
}
