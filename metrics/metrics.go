// Package metrics holds the Prometheus instruments of the recommendation service.
// Instruments register on the default registry and are exposed at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation pipeline
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picko_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // reranked, passthrough, truncated, fallback, empty
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "picko_recommendation_duration_seconds",
			Help:    "End-to-end duration of a recommendation request in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "picko_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picko_fallbacks_total",
			Help: "Total number of local fallbacks taken, by pipeline stage",
		},
		[]string{"stage"},
	)

	CandidateCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "picko_candidates",
			Help:    "Number of deduplicated candidates per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200, 400},
		},
	)

	// Generative model
	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picko_llm_calls_total",
			Help: "Total number of generative model calls by operation and result",
		},
		[]string{"operation", "result"}, // result: success, failure, rejected
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "picko_llm_call_duration_seconds",
			Help:    "Duration of generative model calls in seconds, retries included",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "picko_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picko_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Store
	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picko_store_query_errors_total",
			Help: "Total number of failed tool store queries by operation",
		},
		[]string{"operation"},
	)

	// Feedback
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picko_interactions_total",
			Help: "Total number of saved user interactions by type and result",
		},
		[]string{"type", "result"},
	)

	// HTTP API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picko_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "picko_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordRecommendation records the outcome and total duration of one request.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordStage records the duration of a pipeline stage.
func RecordStage(stage string, duration time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordFallback counts a local fallback at the given stage.
func RecordFallback(stage string) {
	FallbacksTotal.WithLabelValues(stage).Inc()
}

// RecordCandidates records the size of a deduplicated candidate set.
func RecordCandidates(n int) {
	CandidateCount.Observe(float64(n))
}

// RecordLLMCall records one logical generative call.
func RecordLLMCall(operation, result string, duration time.Duration) {
	LLMCallsTotal.WithLabelValues(operation, result).Inc()
	LLMCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordBreakerTransition updates the state gauge and counts the transition.
func RecordBreakerTransition(name, from, to string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordStoreError counts a failed store query.
func RecordStoreError(operation string) {
	StoreQueryErrors.WithLabelValues(operation).Inc()
}

// RecordInteraction counts a saved or rejected interaction.
func RecordInteraction(interactionType string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	InteractionsTotal.WithLabelValues(interactionType, result).Inc()
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
