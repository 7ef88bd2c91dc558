package constant

// Event topics.
const (
	TopicKnowledgeChanged = "knowledge.changed"
)

// Knowledge change kinds carried in KnowledgeChangedEvent.Kind.
const (
	KnowledgeBeans           = "beans"
	KnowledgeRecipes         = "recipes"
	KnowledgeTroubleshooting = "troubleshooting"
	KnowledgeTraining        = "training"
)

// Knowledge change actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)
