// Package llmtest provides an in-memory LLMProvider for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"baristabox-be/pkg/llm"
)

var ErrScripted = errors.New("scripted provider failure")

// Responder decides the reply for one prompt.
type Responder func(prompt string) (string, error)

// Provider records every prompt and answers through Respond. With no
// Respond set it echoes the prompt back.
type Provider struct {
	mu      sync.Mutex
	Respond Responder
	Prompts []string
}

var _ llm.LLMProvider = &Provider{}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	var prompt string
	for _, msg := range history {
		if prompt != "" {
			prompt += "\n"
		}
		prompt += msg.Content
	}
	return p.Generate(ctx, prompt, opts...)
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	p.mu.Lock()
	p.Prompts = append(p.Prompts, prompt)
	respond := p.Respond
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if respond == nil {
		return prompt, nil
	}
	return respond(prompt)
}

// Calls returns a copy of the recorded prompts.
func (p *Provider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.Prompts...)
}

// Failing always returns ErrScripted.
func Failing() *Provider {
	return &Provider{Respond: func(string) (string, error) { return "", ErrScripted }}
}
