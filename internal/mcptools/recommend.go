package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// RecommendTool handles recommend_coffee.
type RecommendTool struct {
	sommelier Recommender
}

func NewRecommendTool(sommelier Recommender) *RecommendTool {
	return &RecommendTool{sommelier: sommelier}
}

func (t *RecommendTool) Definition() mcp.Tool {
	return mcp.NewTool("recommend_coffee",
		mcp.WithDescription(
			"Suggest coffee beans for a taste description, e.g. 'something fruity and bright for the morning'.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("What the drinker likes, in their own words"),
		),
	)
}

func (t *RecommendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	return mcp.NewToolResultText(t.sommelier.GetRecommendation(ctx, query)), nil
}
