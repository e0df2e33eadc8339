// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the similarity service:
// - Engine check throughput and latency per flow (interactive, mass_import)
// - Duplicate match counts per threshold band
// - Mass-import decisions and tag merges
// - API endpoint latency and throughput

var (
	// Similarity Engine Metrics
	SimilarityChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_checks_total",
			Help: "Total number of similarity check operations",
		},
		[]string{"flow"}, // "interactive", "mass_import"
	)

	SimilarityCheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "similarity_check_duration_seconds",
			Help:    "Duration of similarity check operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"flow"},
	)

	SimilarityCandidatesScored = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "similarity_candidates_scored",
			Help:    "Number of candidates scored per check",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"flow"},
	)

	DuplicateMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duplicate_matches_total",
			Help: "Total number of candidates crossing a similarity threshold",
		},
		[]string{"flow", "band"}, // band: "warning", "high_similarity"
	)

	// Mass-Import Metrics
	MassImportDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mass_import_decisions_total",
			Help: "Total number of mass-import duplicate decisions",
		},
		[]string{"decision"}, // "unique", "duplicate", "error"
	)

	TagMergesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tag_merges_total",
			Help: "Total number of tag union merges that changed a record",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordSimilarityCheck records one engine invocation.
func RecordSimilarityCheck(flow string, candidates int, duration time.Duration) {
	SimilarityChecksTotal.WithLabelValues(flow).Inc()
	SimilarityCheckDuration.WithLabelValues(flow).Observe(duration.Seconds())
	SimilarityCandidatesScored.WithLabelValues(flow).Observe(float64(candidates))
}

// RecordDuplicateMatches records threshold crossings from one check.
func RecordDuplicateMatches(flow string, band string, count int) {
	if count > 0 {
		DuplicateMatchesTotal.WithLabelValues(flow, band).Add(float64(count))
	}
}

// RecordMassImportDecision records how one import item was classified.
func RecordMassImportDecision(decision string) {
	MassImportDecisionsTotal.WithLabelValues(decision).Inc()
}

// RecordTagMerge records a tag merge that added at least one key.
func RecordTagMerge() {
	TagMergesTotal.Inc()
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
