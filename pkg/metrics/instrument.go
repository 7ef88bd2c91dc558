package metrics

import (
	"context"
	"time"

	"baristabox-be/pkg/embedding"
	"baristabox-be/pkg/llm"
)

type instrumentedLLM struct {
	next     llm.LLMProvider
	rec      *PrometheusRecorder
	counter  *TokenCounter
	provider string
	model    string
}

// InstrumentLLM records request count, latency and token usage for every
// call that passes through.
func InstrumentLLM(rec *PrometheusRecorder, counter *TokenCounter, provider, model string) llm.Middleware {
	return func(next llm.LLMProvider) llm.LLMProvider {
		return &instrumentedLLM{next: next, rec: rec, counter: counter, provider: provider, model: model}
	}
}

func (p *instrumentedLLM) observe(prompt string, start time.Time, reply string, err error) {
	p.rec.ObserveLLMRequest(p.provider, p.model,
		p.counter.CountTokens(prompt), p.counter.CountTokens(reply),
		time.Since(start), err)
}

func (p *instrumentedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	start := time.Now()
	reply, err := p.next.Chat(ctx, history, opts...)
	var prompt string
	for _, msg := range history {
		prompt += msg.Content
	}
	p.observe(prompt, start, reply, err)
	return reply, err
}

func (p *instrumentedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	start := time.Now()
	reply, err := p.next.Generate(ctx, prompt, opts...)
	p.observe(prompt, start, reply, err)
	return reply, err
}

type instrumentedEmbedding struct {
	next embedding.EmbeddingProvider
	rec  *PrometheusRecorder
}

func InstrumentEmbedding(rec *PrometheusRecorder, next embedding.EmbeddingProvider) embedding.EmbeddingProvider {
	return &instrumentedEmbedding{next: next, rec: rec}
}

func (p *instrumentedEmbedding) Model() string {
	return p.next.Model()
}

func (p *instrumentedEmbedding) Generate(ctx context.Context, text string, taskType embedding.TaskType) ([]float32, error) {
	vec, err := p.next.Generate(ctx, text, taskType)
	p.rec.ObserveEmbedding(p.next.Model(), string(taskType), err)
	return vec, err
}
