package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"baristabox-be/internal/entity"
	"baristabox-be/pkg/brewer"
	"baristabox-be/pkg/doctor"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedFlows struct {
	lookup *brewer.Lookup
	err    error
}

func (c cannedFlows) GetRecommendation(_ context.Context, query string) string {
	return "recommend:" + query
}

func (c cannedFlows) GetRecipe(_ context.Context, query string) string {
	return "recipe:" + query
}

func (c cannedFlows) RetrievalContext(context.Context, string) (*brewer.Lookup, error) {
	return c.lookup, c.err
}

type recordingDoctor struct {
	startedWith string
	stepped     *doctor.State
}

func (d *recordingDoctor) Start(_ context.Context, problem, rawQuery string) doctor.Reply {
	d.startedWith = problem
	return doctor.Reply{
		Text:    "What bean are you using?",
		State:   &doctor.State{Stage: doctor.StageGatheringBean, Problem: problem, OriginalQuery: rawQuery},
		Outcome: doctor.OutcomeAsking,
	}
}

func (d *recordingDoctor) Step(_ context.Context, state doctor.State, _ string) doctor.Reply {
	d.stepped = &state
	return doctor.Reply{Text: "Coarsen your grind.", Outcome: doctor.OutcomeSolved}
}

type staticProblem string

func (p staticProblem) Classify(context.Context, string) (string, error) {
	return string(p), nil
}

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, r)
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestDefinitionsRequireTheirInputs(t *testing.T) {
	flows := cannedFlows{}
	tests := []struct {
		tool     mcp.Tool
		name     string
		required string
	}{
		{tool: NewRecommendTool(flows).Definition(), name: "recommend_coffee", required: "query"},
		{tool: NewRecipeTool(flows).Definition(), name: "get_recipe", required: "query"},
		{tool: NewRecipeContextTool(flows).Definition(), name: "get_recipe_context", required: "query"},
		{tool: NewDiagnoseTool(&recordingDoctor{}, nil).Definition(), name: "diagnose", required: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.tool.Name)
			assert.Contains(t, tt.tool.InputSchema.Required, tt.required)
		})
	}
}

func TestRecommendAndRecipe(t *testing.T) {
	ctx := context.Background()
	flows := cannedFlows{}

	res, err := NewRecommendTool(flows).Handle(ctx, makeReq(map[string]interface{}{"query": "fruity"}))
	require.NoError(t, err)
	assert.Equal(t, "recommend:fruity", resultText(t, res))

	res, err = NewRecipeTool(flows).Handle(ctx, makeReq(map[string]interface{}{"query": "V60"}))
	require.NoError(t, err)
	assert.Equal(t, "recipe:V60", resultText(t, res))

	res, err = NewRecommendTool(flows).Handle(ctx, makeReq(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRecipeContext(t *testing.T) {
	ctx := context.Background()
	bean := &entity.Bean{Id: "cb_001", Name: "Ethiopia Yirgacheffe"}
	recipe := &entity.Recipe{Id: "br_001", BeanId: "cb_001", BrewMethod: "V60"}

	t.Run("complete", func(t *testing.T) {
		tool := NewRecipeContextTool(cannedFlows{lookup: &brewer.Lookup{
			Entities: brewer.Entities{Bean: bean, Method: "v60"},
			Recipe:   recipe,
		}})
		res, err := tool.Handle(ctx, makeReq(map[string]interface{}{"query": "yirgacheffe v60"}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		var got recipeContext
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.Equal(t, "cb_001", got.Bean.Id)
		assert.Equal(t, "br_001", got.Recipe.Id)
	})

	t.Run("incomplete", func(t *testing.T) {
		tool := NewRecipeContextTool(cannedFlows{lookup: &brewer.Lookup{Entities: brewer.Entities{Method: "v60"}}})
		res, err := tool.Handle(ctx, makeReq(map[string]interface{}{"query": "v60"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("store failure", func(t *testing.T) {
		tool := NewRecipeContextTool(cannedFlows{err: errors.New("disk gone")})
		res, err := tool.Handle(ctx, makeReq(map[string]interface{}{"query": "v60"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestDiagnoseRoundTrip(t *testing.T) {
	ctx := context.Background()
	doc := &recordingDoctor{}
	tool := NewDiagnoseTool(doc, staticProblem("bitter"))

	res, err := tool.Handle(ctx, makeReq(map[string]interface{}{"message": "my coffee is bitter"}))
	require.NoError(t, err)
	assert.Equal(t, "bitter", doc.startedWith)

	var first doctor.Reply
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &first))
	require.NotNil(t, first.State)
	assert.Equal(t, doctor.OutcomeAsking, first.Outcome)

	state, err := json.Marshal(first.State)
	require.NoError(t, err)
	res, err = tool.Handle(ctx, makeReq(map[string]interface{}{"message": "Ethiopia Yirgacheffe", "state": string(state)}))
	require.NoError(t, err)

	require.NotNil(t, doc.stepped)
	assert.Equal(t, "my coffee is bitter", doc.stepped.OriginalQuery)

	var second doctor.Reply
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &second))
	assert.Nil(t, second.State)
	assert.Equal(t, doctor.OutcomeSolved, second.Outcome)
}

func TestDiagnoseInputErrors(t *testing.T) {
	ctx := context.Background()
	tool := NewDiagnoseTool(&recordingDoctor{}, nil)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{name: "no message", args: map[string]interface{}{}},
		{name: "bad state", args: map[string]interface{}{"message": "yes", "state": "{"}},
		{name: "no problem and no classifier", args: map[string]interface{}{"message": "bitter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.Handle(ctx, makeReq(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}
