package classifier

import (
	"context"
	"fmt"
	"strings"

	"baristabox-be/pkg/llm"
)

// LLMClassifier asks the generator to pick a label. A reply naming none of
// the labels yields fallback.
type LLMClassifier struct {
	provider     llm.LLMProvider
	labels       []string
	descriptions map[string]string
	fallback     string
}

func NewLLMClassifier(provider llm.LLMProvider, labels []string, fallback string) *LLMClassifier {
	return &LLMClassifier{
		provider:     provider,
		labels:       labels,
		descriptions: make(map[string]string),
		fallback:     fallback,
	}
}

// Describe attaches a one-line hint to a label for the prompt.
func (c *LLMClassifier) Describe(label, description string) *LLMClassifier {
	c.descriptions[label] = description
	return c
}

func (c *LLMClassifier) Classify(ctx context.Context, text string) (string, error) {
	reply, err := c.provider.Generate(ctx, c.prompt(text), llm.WithTemperature(0))
	if err != nil {
		return "", err
	}
	return c.parse(reply), nil
}

func (c *LLMClassifier) prompt(text string) string {
	var b strings.Builder
	b.WriteString("Classify the user's message into exactly one of the following labels.\n")
	for _, label := range c.labels {
		if d, ok := c.descriptions[label]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", label, d)
		} else {
			fmt.Fprintf(&b, "- %s\n", label)
		}
	}
	fmt.Fprintf(&b, "Message: \"%s\"\nRespond with ONLY the label.", text)
	return b.String()
}

// parse takes the label whose name appears earliest in the reply.
func (c *LLMClassifier) parse(reply string) string {
	r := strings.ToLower(reply)
	best, at := c.fallback, -1
	for _, label := range c.labels {
		i := strings.Index(r, strings.ToLower(label))
		if i < 0 {
			continue
		}
		if at < 0 || i < at || (i == at && len(label) > len(best)) {
			best, at = label, i
		}
	}
	return best
}
