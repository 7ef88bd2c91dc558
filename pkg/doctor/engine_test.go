package doctor

import (
	"context"
	"strings"
	"testing"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/repository/knowledgetest"
	"baristabox-be/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answering returns a provider that interprets every answer as verdict and
// echoes every other prompt.
func answering(verdict string) *llmtest.Provider {
	return &llmtest.Provider{Respond: func(prompt string) (string, error) {
		if strings.HasPrefix(prompt, "Analyze the user's response") {
			return verdict, nil
		}
		return prompt, nil
	}}
}

func newEngine(t *testing.T, p *llmtest.Provider) *Engine {
	_, factory := knowledgetest.Open(t)
	return NewEngine(factory, p, logger.NewNopLogger())
}

func TestStartUnknownProblem(t *testing.T) {
	e := newEngine(t, answering("negative"))

	reply := e.Start(context.Background(), "muddy", "it's muddy")

	assert.Equal(t, UnknownProblemMessage, reply.Text)
	assert.Nil(t, reply.State)
	assert.Equal(t, OutcomeUnknownProblem, reply.Outcome)
}

func TestStartAsksForBean(t *testing.T) {
	e := newEngine(t, &llmtest.Provider{Respond: func(string) (string, error) {
		return `"What bean are you brewing?"`, nil
	}})

	reply := e.Start(context.Background(), "bitter", "my coffee is bitter")

	require.NotNil(t, reply.State)
	assert.Equal(t, "What bean are you brewing?", reply.Text)
	assert.Equal(t, StageGatheringBean, reply.State.Stage)
	assert.Equal(t, "bitter", reply.State.Problem)
	assert.Equal(t, "my coffee is bitter", reply.State.OriginalQuery)
	assert.Equal(t, OutcomeAsking, reply.Outcome)
}

func TestStartGeneratorFailure(t *testing.T) {
	e := newEngine(t, llmtest.Failing())

	reply := e.Start(context.Background(), "bitter", "bitter")

	assert.Equal(t, ApologyMessage, reply.Text)
	assert.Nil(t, reply.State)
	assert.Equal(t, OutcomeFailed, reply.Outcome)
}

func TestBitterV60Walkthrough(t *testing.T) {
	p := answering("affirmative")
	e := newEngine(t, p)
	ctx := context.Background()

	reply := e.Start(ctx, "bitter", "my coffee is bitter")
	require.NotNil(t, reply.State)

	reply = e.Step(ctx, *reply.State, "Ethiopia Yirgacheffe")
	require.NotNil(t, reply.State)
	assert.Equal(t, StageGatheringMethod, reply.State.Stage)
	assert.Equal(t, "Ethiopia Yirgacheffe", reply.State.BeanName)

	reply = e.Step(ctx, *reply.State, "V60")
	require.NotNil(t, reply.State)
	state := *reply.State
	assert.Equal(t, StageDiagnosing, state.Stage)
	require.NotNil(t, state.IdealRecipe)
	assert.Equal(t, "br_001", state.IdealRecipe.Id)
	assert.Equal(t, []string{"grind_fine", "water_temp_high", "brew_time_long"}, state.CauseKeys)
	assert.Equal(t, 1, state.CauseCursor)
	require.NotNil(t, state.CurrentCause)
	assert.Equal(t, "grind_fine", state.CurrentCause.Key)
	assert.Equal(t, "Is your grind finer than table salt?", state.CurrentCause.Question)
	assert.Contains(t, reply.Text, "The ideal recipe for this coffee uses a 'Medium-Fine' grind. Is your grind finer than table salt?")

	reply = e.Step(ctx, state, "yes, very fine")
	assert.Nil(t, reply.State)
	assert.Equal(t, OutcomeSolved, reply.Outcome)
	assert.True(t, reply.Terminal())

	calls := p.Calls()
	solution := calls[len(calls)-1]
	assert.Contains(t, solution, "Coarsen your grind a few steps")
	assert.Contains(t, solution, `"recipe_id":"br_001"`)
}

func TestAllNegativeExhaustsCauses(t *testing.T) {
	e := newEngine(t, answering("negative"))
	ctx := context.Background()

	reply := e.Start(ctx, "bitter", "bitter")
	reply = e.Step(ctx, *reply.State, "Colombia Supremo")
	reply = e.Step(ctx, *reply.State, "French Press")

	asked := []string{}
	for reply.State != nil {
		asked = append(asked, reply.State.CurrentCause.Key)
		reply = e.Step(ctx, *reply.State, "no")
	}

	assert.Equal(t, []string{"grind_fine", "water_temp_high", "brew_time_long"}, asked)
	assert.Equal(t, ExhaustedMessage, reply.Text)
	assert.Equal(t, OutcomeExhausted, reply.Outcome)
}

func TestUnsureMovesOn(t *testing.T) {
	e := newEngine(t, answering("I am unsure"))
	ctx := context.Background()

	state := State{
		Stage:        StageDiagnosing,
		Problem:      "sour",
		CauseKeys:    []string{"grind_coarse", "water_temp_low"},
		CauseCursor:  1,
		CurrentCause: &entity.Cause{Key: "grind_coarse", Question: "Does your grind look like coarse sea salt?"},
	}
	reply := e.Step(ctx, state, "maybe?")

	require.NotNil(t, reply.State)
	assert.Equal(t, "water_temp_low", reply.State.CurrentCause.Key)
	assert.Equal(t, 2, reply.State.CauseCursor)
	assert.Equal(t, 1, state.CauseCursor, "input state must not change")
}

func TestFailurePreservesState(t *testing.T) {
	e := newEngine(t, llmtest.Failing())
	ctx := context.Background()

	state := State{Stage: StageGatheringBean, Problem: "bitter", OriginalQuery: "bitter"}
	reply := e.Step(ctx, state, "Ethiopia Yirgacheffe")

	require.NotNil(t, reply.State)
	assert.Equal(t, ApologyMessage, reply.Text)
	assert.Equal(t, OutcomeFailed, reply.Outcome)
	assert.Equal(t, state, *reply.State)
}

func TestRemovedCauseIsSkipped(t *testing.T) {
	_, factory := knowledgetest.Open(t)
	e := NewEngine(factory, answering("negative"), logger.NewNopLogger())
	ctx := context.Background()

	state := State{
		Stage:       StageDiagnosing,
		Problem:     "bitter",
		CauseKeys:   []string{"grind_fine", "water_temp_high", "brew_time_long"},
		CauseCursor: 1,
		CurrentCause: &entity.Cause{
			Key:      "grind_fine",
			Question: "Is your grind finer than table salt?",
		},
	}
	require.NoError(t, factory.NewUnitOfWork(ctx).ProblemRepository().DeleteCause(ctx, "bitter", "water_temp_high"))

	reply := e.Step(ctx, state, "no")

	require.NotNil(t, reply.State)
	assert.Equal(t, "brew_time_long", reply.State.CurrentCause.Key)
	assert.Equal(t, 3, reply.State.CauseCursor)
}

func TestUnknownStage(t *testing.T) {
	e := newEngine(t, answering("negative"))

	reply := e.Step(context.Background(), State{Stage: "BREWING"}, "hi")

	assert.Equal(t, LostTrackMessage, reply.Text)
	assert.True(t, reply.Terminal())
}

func TestResolveRecipe(t *testing.T) {
	e := newEngine(t, answering("negative"))
	ctx := context.Background()

	tests := []struct {
		name   string
		bean   string
		method string
		want   string
	}{
		{name: "exact names", bean: "Ethiopia Yirgacheffe", method: "V60", want: "br_001"},
		{name: "embedded in sentence", bean: "I'm using ethiopia yirgacheffe beans", method: "an aeropress", want: "br_002"},
		{name: "unknown bean", bean: "Kenya AA", method: "V60"},
		{name: "no recipe for method", bean: "Sumatra Mandheling", method: "Chemex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := e.ResolveRecipe(ctx, tt.bean, tt.method)
			require.NoError(t, err)
			second, err := e.ResolveRecipe(ctx, tt.bean, tt.method)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			if tt.want == "" {
				assert.Nil(t, first)
				return
			}
			require.NotNil(t, first)
			assert.Equal(t, tt.want, first.Id)
		})
	}
}

func TestAugmentQuestion(t *testing.T) {
	recipe := &entity.Recipe{
		GrindSize:      "Medium-Fine",
		WaterTempC:     94,
		TechniqueNotes: "Pour slowly, finish around 3:15.",
	}

	tests := []struct {
		name   string
		key    string
		recipe *entity.Recipe
		want   string
	}{
		{name: "grind", key: "grind_coarse", recipe: recipe, want: "The ideal recipe for this coffee uses a 'Medium-Fine' grind. Q?"},
		{name: "brew time from notes", key: "brew_time_short", recipe: recipe, want: "The target brew time for this recipe is around 3:15. Q?"},
		{name: "brew time default", key: "brew_time_long", recipe: &entity.Recipe{TechniqueNotes: "steep"}, want: "The target brew time for this recipe is around the recommended time (e.g., 2:30 for V60). Q?"},
		{name: "water temp", key: "water_temp_high", recipe: recipe, want: "This recipe calls for water at 94°C. Q?"},
		{name: "unrelated cause", key: "ratio_low", recipe: recipe, want: "Q?"},
		{name: "no recipe", key: "grind_fine", recipe: nil, want: "Q?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AugmentQuestion(tt.key, "Q?", tt.recipe))
		})
	}
}

func TestParseVerdict(t *testing.T) {
	assert.Equal(t, VerdictAffirmative, ParseVerdict(" Affirmative.\n"))
	assert.Equal(t, VerdictNegative, ParseVerdict("negative"))
	assert.Equal(t, VerdictUnsure, ParseVerdict("UNSURE"))
	assert.Equal(t, VerdictUnknown, ParseVerdict("perhaps"))
}
