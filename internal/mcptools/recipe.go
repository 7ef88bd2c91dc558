package mcptools

import (
	"context"
	"fmt"

	"baristabox-be/internal/entity"

	"github.com/mark3labs/mcp-go/mcp"
)

// RecipeTool handles get_recipe.
type RecipeTool struct {
	brewer RecipeGuide
}

func NewRecipeTool(brewer RecipeGuide) *RecipeTool {
	return &RecipeTool{brewer: brewer}
}

func (t *RecipeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_recipe",
		mcp.WithDescription(
			"Step-by-step brew guide for a bean and brew method named in the query, e.g. 'Ethiopia Yirgacheffe on a V60'.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("A request naming one bean and one brew method"),
		),
	)
}

func (t *RecipeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	return mcp.NewToolResultText(t.brewer.GetRecipe(ctx, query)), nil
}

// RecipeContextTool handles get_recipe_context: the raw lookup, without
// the generated guide.
type RecipeContextTool struct {
	brewer RecipeGuide
}

func NewRecipeContextTool(brewer RecipeGuide) *RecipeContextTool {
	return &RecipeContextTool{brewer: brewer}
}

func (t *RecipeContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_recipe_context",
		mcp.WithDescription(
			"Look up the stored bean and recipe records a query refers to, as JSON.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("A request naming one bean and one brew method"),
		),
	)
}

type recipeContext struct {
	Bean   *entity.Bean   `json:"bean"`
	Method string         `json:"brew_method"`
	Recipe *entity.Recipe `json:"recipe"`
}

func (t *RecipeContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	lookup, err := t.brewer.RetrievalContext(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	if !lookup.Complete() {
		return mcp.NewToolResultError("the query must name a known bean and brew method"), nil
	}

	return jsonResult(recipeContext{Bean: lookup.Bean, Method: lookup.Method, Recipe: lookup.Recipe})
}
