package doctor

import "baristabox-be/internal/entity"

type Stage string

const (
	StageGatheringBean   Stage = "GATHERING_BEAN"
	StageGatheringMethod Stage = "GATHERING_METHOD"
	StageDiagnosing      Stage = "DIAGNOSING"
)

// State is the whole conversation context of one diagnosis. It is a value:
// every transition returns a new State and never mutates its input.
type State struct {
	Stage         Stage  `json:"stage"`
	Problem       string `json:"problem"`
	OriginalQuery string `json:"original_query"`
	BeanName      string `json:"bean_name,omitempty"`
	BrewMethod    string `json:"brew_method,omitempty"`

	IdealRecipe *entity.Recipe `json:"ideal_recipe,omitempty"`

	// CauseKeys is the problem's cause order captured when diagnosis began.
	// CauseCursor indexes the next cause to ask about.
	CauseKeys    []string      `json:"cause_keys,omitempty"`
	CauseCursor  int           `json:"cause_cursor"`
	CurrentCause *entity.Cause `json:"current_cause,omitempty"`
}

func (s State) Clone() State {
	c := s
	c.CauseKeys = append([]string(nil), s.CauseKeys...)
	if s.IdealRecipe != nil {
		r := *s.IdealRecipe
		c.IdealRecipe = &r
	}
	if s.CurrentCause != nil {
		cause := *s.CurrentCause
		c.CurrentCause = &cause
	}
	return c
}

type Outcome string

const (
	OutcomeAsking         Outcome = "asking"
	OutcomeSolved         Outcome = "solved"
	OutcomeExhausted      Outcome = "exhausted"
	OutcomeFailed         Outcome = "failed"
	OutcomeUnknownProblem Outcome = "unknown_problem"
)

// Reply is the result of one transition. State is nil once the diagnosis is
// over, and also when Start could not begin one.
type Reply struct {
	Text    string  `json:"text"`
	State   *State  `json:"state,omitempty"`
	Outcome Outcome `json:"outcome"`
}

// Terminal reports whether the conversation should leave the doctor flow.
func (r Reply) Terminal() bool {
	return r.State == nil
}
