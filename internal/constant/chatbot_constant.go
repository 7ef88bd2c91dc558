package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	ChatGreeting = "Hi! I'm your BaristaBox assistant. Ask me for a coffee recommendation, a brew recipe, or help fixing a cup that tastes off."

	ChatUnknownIntentReply = "I'm not quite sure how to help with that yet. Try asking me for a recommendation, a recipe, or help fixing your coffee!"
	ChatApologyReply       = "I'm having a little trouble understanding right now. Please try again in a moment."
)

// Flow names recorded on assistant messages and in metrics.
const (
	FlowDoctor    = "doctor"
	FlowSommelier = "sommelier"
	FlowBrewer    = "brewer"
	FlowUnknown   = "unknown"
	FlowGreeting  = "greeting"
)
