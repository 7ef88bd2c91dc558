package dto

import "time"

// KnowledgeChangedMessage is the in-process payload on the knowledge topic.
type KnowledgeChangedMessage struct {
	Kind       string    `json:"kind"`
	Action     string    `json:"action"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
}

type IndexStatusResponse struct {
	Stale           bool       `json:"stale"`
	StaleKinds      []string   `json:"stale_kinds"`
	LastBuiltAt     *time.Time `json:"last_built_at"`
	FlavorMapBeans  int        `json:"flavor_map_beans"`
	IntentExamples  int        `json:"intent_examples"`
	ProblemExamples int        `json:"problem_examples"`
}
