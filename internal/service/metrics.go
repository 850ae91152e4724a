package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iqbaldf/chatline/internal/types"
)

// MetricsInterface is what the chat flow needs from metrics collection
type MetricsInterface interface {
	RecordChatRequest(provider, outcome string)
	ObserveProviderLatency(provider string, latencyMs float64)
	AddUsage(provider string, usage types.Usage)
	RecordFallback(from string)
	RecordError(provider string, kind types.ErrorKind)
}

// MetricsService handles Prometheus metrics collection
type MetricsService struct {
	// Request metrics
	requestsTotal *prometheus.CounterVec

	// Token metrics
	promptTokensTotal     *prometheus.CounterVec
	completionTokensTotal *prometheus.CounterVec

	// Latency metrics
	providerLatency *prometheus.HistogramVec

	// Fallback metrics
	fallbackTotal *prometheus.CounterVec

	// Error metrics
	errorsTotal *prometheus.CounterVec
}

// NewMetricsService creates a new metrics service
func NewMetricsService() *MetricsService {
	ms := &MetricsService{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatline_requests_total",
				Help: "Total number of chat turn requests",
			},
			[]string{"provider", "outcome"},
		),

		promptTokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatline_prompt_tokens_total",
				Help: "Total number of prompt tokens sent to providers",
			},
			[]string{"provider"},
		),

		completionTokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatline_completion_tokens_total",
				Help: "Total number of completion tokens returned by providers",
			},
			[]string{"provider"},
		),

		providerLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatline_provider_latency_ms",
				Help:    "Provider completion latency in milliseconds",
				Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
			},
			[]string{"provider"},
		),

		fallbackTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatline_fallback_total",
				Help: "Total number of retries against the primary provider",
			},
			[]string{"from"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatline_errors_total",
				Help: "Total number of provider errors by kind",
			},
			[]string{"provider", "kind"},
		),
	}

	prometheus.MustRegister(
		ms.requestsTotal,
		ms.promptTokensTotal,
		ms.completionTokensTotal,
		ms.providerLatency,
		ms.fallbackTotal,
		ms.errorsTotal,
	)

	return ms
}

// RecordChatRequest counts one chat turn against a provider with its outcome
func (ms *MetricsService) RecordChatRequest(provider, outcome string) {
	ms.requestsTotal.WithLabelValues(provider, outcome).Inc()
}

// ObserveProviderLatency records how long one provider call took
func (ms *MetricsService) ObserveProviderLatency(provider string, latencyMs float64) {
	ms.providerLatency.WithLabelValues(provider).Observe(latencyMs)
}

// AddUsage accumulates token usage reported for one completion
func (ms *MetricsService) AddUsage(provider string, usage types.Usage) {
	ms.promptTokensTotal.WithLabelValues(provider).Add(float64(usage.PromptTokens))
	ms.completionTokensTotal.WithLabelValues(provider).Add(float64(usage.CompletionTokens))
}

// RecordFallback counts a retry against the primary provider
func (ms *MetricsService) RecordFallback(from string) {
	ms.fallbackTotal.WithLabelValues(from).Inc()
}

// RecordError counts a provider failure by error kind
func (ms *MetricsService) RecordError(provider string, kind types.ErrorKind) {
	ms.errorsTotal.WithLabelValues(provider, string(kind)).Inc()
}
