// Package brewer answers recipe requests by exact lookup: extract the bean
// and brew method from the query, fetch the stored recipe, and have the
// generator turn it into a step-by-step guide.
package brewer

import (
	"context"
	"encoding/json"
	"fmt"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/mapper"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/repository/unitofwork"
	"baristabox-be/pkg/llm"
)

const module = "MasterBrewer"

const (
	ClarificationMessage = "I can certainly help with a recipe! Please tell me which coffee bean and which brew method you'd like to use (for example, 'recipe for Ethiopia Yirgacheffe with a V60')."
	ApologyMessage       = "I'm having a little trouble retrieving that recipe right now. Please try again in a moment."
)

func noRecipeMessage(bean, method string) string {
	return fmt.Sprintf("I'm sorry, I don't have a specific recipe for '%s' with a '%s' right now. I'll ask my expert to add one soon!", bean, method)
}

type Brewer struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	mapper      *mapper.RecipeMapper
}

func NewBrewer(uowFactory unitofwork.RepositoryFactory, llmProvider llm.LLMProvider, logger logger.ILogger) *Brewer {
	return &Brewer{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		logger:      logger,
		mapper:      mapper.NewRecipeMapper(),
	}
}

// Lookup is the retrieval half of GetRecipe. Recipe is nil when the bean
// and method were found but no recipe exists for the pair; Context is the
// indented JSON fed to the generator.
type Lookup struct {
	Entities
	Recipe  *entity.Recipe
	Context string
}

func (b *Brewer) RetrievalContext(ctx context.Context, query string) (*Lookup, error) {
	found, err := b.Extract(ctx, query)
	if err != nil {
		return nil, err
	}
	lookup := &Lookup{Entities: found}
	if !found.Complete() {
		return lookup, nil
	}

	recipe, err := b.uowFactory.NewUnitOfWork(ctx).RecipeRepository().FindByBeanAndMethod(ctx, found.Bean.Id, found.Method)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return lookup, nil
	}

	raw, err := json.MarshalIndent(b.mapper.ToModel(recipe), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipe %s: %w", recipe.Id, err)
	}
	lookup.Recipe = recipe
	lookup.Context = string(raw)
	return lookup, nil
}

// GetRecipe always returns text for the user; failures become the apology.
func (b *Brewer) GetRecipe(ctx context.Context, query string) string {
	lookup, err := b.RetrievalContext(ctx, query)
	if err != nil {
		b.logger.Error(module, "Recipe retrieval failed", map[string]interface{}{"error": err.Error()})
		return ApologyMessage
	}
	if !lookup.Complete() {
		return ClarificationMessage
	}
	if lookup.Recipe == nil {
		b.logger.Info(module, "No recipe for pair", map[string]interface{}{
			"bean_id":     lookup.Bean.Id,
			"brew_method": lookup.Method,
		})
		return noRecipeMessage(lookup.Bean.Name, entity.BrewMethodDisplayName(lookup.Method))
	}

	out, err := b.llmProvider.Generate(ctx, recipePrompt(query, lookup.Context))
	if err != nil {
		b.logger.Error(module, "Generator call failed", map[string]interface{}{"error": err.Error()})
		return ApologyMessage
	}
	return out
}

func recipePrompt(query, knowledge string) string {
	return fmt.Sprintf(`You are 'The Master Brewer,' a precise, clear, and encouraging AI coffee expert.
Your goal is to provide a user with a step-by-step brew recipe based ONLY on the JSON data I provide.

Follow these rules strictly:
1. Start by confirming the recipe you are providing (e.g., "Certainly! Here is the expert recipe for...").
2. Present the core parameters (Grind Size, Coffee Dose, Water Amount, Water Temperature) as a clear, easy-to-read list.
3. Translate the raw data into a friendly, step-by-step guide.
4. Incorporate the 'technique_notes' into the steps to give it an expert touch.
5. Finish with an encouraging closing statement (e.g., "Enjoy your perfectly brewed cup!").

--- USER's REQUEST ---
"%s"

--- EXACT RECIPE DATA (Your knowledge base) ---
%s
--- END OF KNOWLEDGE BASE ---`, query, knowledge)
}
