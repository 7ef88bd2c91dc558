package llm

import (
	"context"
	"time"
)

// Middleware decorates a provider.
type Middleware func(LLMProvider) LLMProvider

// Chain applies middlewares so that the first one listed is outermost.
func Chain(p LLMProvider, mws ...Middleware) LLMProvider {
	for i := len(mws) - 1; i >= 0; i-- {
		p = mws[i](p)
	}
	return p
}

type timeoutProvider struct {
	next    LLMProvider
	timeout time.Duration
}

// WithTimeout bounds every call. A non-positive timeout disables the bound.
func WithTimeout(timeout time.Duration) Middleware {
	return func(next LLMProvider) LLMProvider {
		if timeout <= 0 {
			return next
		}
		return &timeoutProvider{next: next, timeout: timeout}
	}
}

func (p *timeoutProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.next.Chat(ctx, history, opts...)
}

func (p *timeoutProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.next.Generate(ctx, prompt, opts...)
}
