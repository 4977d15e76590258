// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package metrics declares the Prometheus instrumentation for the offline
// pipeline, the recommendation query path, TMDb enrichment and the HTTP API.
// Collectors register with the default registry through promauto and are
// exposed by promhttp at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reelmatch"

var (
	// Offline pipeline
	PipelineRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_records_total",
			Help:      "Dataset records seen by the offline build, by stage",
		},
		[]string{"stage"}, // read, joined, dropped, malformed, kept
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of each offline build stage",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300},
		},
		[]string{"stage"},
	)

	// Recommendation queries
	RecommendQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_queries_total",
			Help:      "Recommendation queries by result",
		},
		[]string{"result"}, // ok, not_found, insufficient, error
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_duration_seconds",
			Help:      "End-to-end recommendation latency including enrichment",
			Buckets:   prometheus.DefBuckets,
		},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_items",
			Help:      "Items in the loaded catalog",
		},
	)

	// TMDb enrichment
	EnrichRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrich_requests_total",
			Help:      "Enrichment lookups by outcome",
		},
		[]string{"outcome"}, // ok, degraded, sentinel, cached
	)

	EnrichAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrich_attempts_total",
			Help:      "Outbound TMDb HTTP attempts including retries",
		},
	)

	EnrichDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enrich_duration_seconds",
			Help:      "Duration of a single enrichment lookup including retries",
			Buckets:   prometheus.DefBuckets,
		},
	)

	EnrichInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "enrich_in_flight",
			Help:      "Enrichment lookups currently running in the worker pool",
		},
	)

	EnrichCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrich_cache_total",
			Help:      "Enrichment cache lookups by tier and result",
		},
		[]string{"tier", "result"}, // tier: memory, badger, redis; result: hit, miss, error
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "Requests through the circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state_transitions_total",
			Help:      "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// HTTP API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "HTTP API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "HTTP API request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "HTTP API requests currently being served",
		},
	)
)

// RecordPipelineStage records a completed offline build stage.
func RecordPipelineStage(stage string, duration time.Duration) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordPipelineRecords adds n to the record counter for stage.
func RecordPipelineRecords(stage string, n int) {
	if n > 0 {
		PipelineRecords.WithLabelValues(stage).Add(float64(n))
	}
}

// RecordRecommendQuery records a finished recommendation query.
func RecordRecommendQuery(result string, duration time.Duration) {
	RecommendQueries.WithLabelValues(result).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordEnrich records a finished enrichment lookup.
func RecordEnrich(outcome string, duration time.Duration) {
	EnrichRequests.WithLabelValues(outcome).Inc()
	EnrichDuration.Observe(duration.Seconds())
}

// RecordEnrichCache records a cache lookup on tier.
func RecordEnrichCache(tier, result string) {
	EnrichCache.WithLabelValues(tier, result).Inc()
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
