// Package mcptools exposes the expert flows as MCP tools.
//
// Each tool is a struct holding its flow, a Definition() returning the
// mcp.Tool schema and a Handle() serving calls. Flow failures come back as
// tool errors, never as protocol errors.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"baristabox-be/pkg/brewer"
	"baristabox-be/pkg/doctor"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type Recommender interface {
	GetRecommendation(ctx context.Context, query string) string
}

type RecipeGuide interface {
	GetRecipe(ctx context.Context, query string) string
	RetrievalContext(ctx context.Context, query string) (*brewer.Lookup, error)
}

type Diagnostician interface {
	Start(ctx context.Context, problem, rawQuery string) doctor.Reply
	Step(ctx context.Context, state doctor.State, userText string) doctor.Reply
}

type ProblemClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Flows is what the tools call into.
type Flows struct {
	Sommelier Recommender
	Brewer    RecipeGuide
	Doctor    Diagnostician
	Problems  ProblemClassifier
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(version string, flows Flows) *server.MCPServer {
	s := server.NewMCPServer(
		"baristabox",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	recommend := NewRecommendTool(flows.Sommelier)
	s.AddTool(recommend.Definition(), recommend.Handle)

	recipe := NewRecipeTool(flows.Brewer)
	s.AddTool(recipe.Definition(), recipe.Handle)

	recipeContext := NewRecipeContextTool(flows.Brewer)
	s.AddTool(recipeContext.Definition(), recipeContext.Handle)

	diagnose := NewDiagnoseTool(flows.Doctor, flows.Problems)
	s.AddTool(diagnose.Definition(), diagnose.Handle)

	return s
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
