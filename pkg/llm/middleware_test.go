package llm_test

import (
	"context"
	"testing"
	"time"

	"baristabox-be/pkg/llm"
	"baristabox-be/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowProvider struct{}

func (slowProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (s slowProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, nil, opts...)
}

func TestWithTimeoutCancelsSlowCalls(t *testing.T) {
	p := llm.Chain(slowProvider{}, llm.WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := p.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWithTimeoutDisabled(t *testing.T) {
	inner := &llmtest.Provider{}
	assert.Same(t, inner, llm.WithTimeout(0)(inner))
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) llm.Middleware {
		return func(next llm.LLMProvider) llm.LLMProvider {
			return &taggedProvider{next: next, onCall: func() { order = append(order, name) }}
		}
	}

	p := llm.Chain(&llmtest.Provider{}, tag("outer"), tag("inner"))
	out, err := p.Generate(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", out)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type taggedProvider struct {
	next   llm.LLMProvider
	onCall func()
}

func (p *taggedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	p.onCall()
	return p.next.Chat(ctx, history, opts...)
}

func (p *taggedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	p.onCall()
	return p.next.Generate(ctx, prompt, opts...)
}

func TestSplitSystem(t *testing.T) {
	system, turns := llm.SplitSystem([]llm.Message{
		{Role: llm.RoleSystem, Content: "be brief"},
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleSystem, Content: "be kind"},
	})
	assert.Equal(t, "be brief\n\nbe kind", system)
	assert.Equal(t, []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, turns)
}
