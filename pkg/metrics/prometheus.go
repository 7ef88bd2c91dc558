// Package metrics provides Prometheus-based metrics recording for the
// generator, the embedder and chat turns.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusRecorder struct {
	llmRequestsTotal       *prometheus.CounterVec
	llmTokensTotal         *prometheus.CounterVec
	llmRequestDuration     *prometheus.HistogramVec
	embeddingRequestsTotal *prometheus.CounterVec
	chatTurnsTotal         *prometheus.CounterVec
}

// NewPrometheusRecorder registers the collectors on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		llmRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baristabox_llm_requests_total",
				Help: "Total number of generator requests by provider, model and status",
			},
			[]string{"provider", "model", "status"},
		),
		llmTokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baristabox_llm_tokens_total",
				Help: "Approximate tokens sent to and received from the generator",
			},
			[]string{"provider", "model", "type"},
		),
		llmRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "baristabox_llm_request_duration_seconds",
				Help:    "Duration of generator requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "model"},
		),
		embeddingRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baristabox_embedding_requests_total",
				Help: "Total number of embedding requests by model, task and status",
			},
			[]string{"model", "task", "status"},
		),
		chatTurnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baristabox_chat_turns_total",
				Help: "Chat turns handled, by flow and outcome",
			},
			[]string{"flow", "outcome"},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (p *PrometheusRecorder) ObserveLLMRequest(provider, model string, promptTokens, completionTokens int, duration time.Duration, err error) {
	p.llmRequestsTotal.WithLabelValues(provider, model, status(err)).Inc()
	p.llmRequestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
	p.llmTokensTotal.WithLabelValues(provider, model, "prompt").Add(float64(promptTokens))
	if err == nil {
		p.llmTokensTotal.WithLabelValues(provider, model, "completion").Add(float64(completionTokens))
	}
}

func (p *PrometheusRecorder) ObserveEmbedding(model, task string, err error) {
	p.embeddingRequestsTotal.WithLabelValues(model, task, status(err)).Inc()
}

func (p *PrometheusRecorder) ObserveChatTurn(flow, outcome string) {
	p.chatTurnsTotal.WithLabelValues(flow, outcome).Inc()
}
