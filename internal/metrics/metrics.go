// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

// Package metrics holds the Prometheus collectors for Route Variety.
// All collectors register with the default registry via promauto and are
// served at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend Metrics
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duration of activity backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	BackendRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_request_errors_total",
			Help: "Total number of failed activity backend requests",
		},
		[]string{"operation", "error_type"}, // error_type: "transport", "status", "decode", "breaker_open"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// HTTP Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Map View Metrics
	ViewLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "map_view_loads_total",
			Help: "Completed map view load sequences by outcome",
		},
		[]string{"outcome"}, // outcome: "ready", "no_gps", "failed"
	)

	ViewLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "map_view_load_duration_seconds",
			Help:    "Duration of map view load sequences (stream plus POI search)",
			Buckets: prometheus.DefBuckets,
		},
	)

	ViewStaleResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "map_view_stale_results_total",
			Help: "Load results discarded because a newer load superseded them",
		},
	)

	ViewsLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "map_views_live",
			Help: "Map views currently held in the view store",
		},
	)

	ViewEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "map_view_evictions_total",
			Help: "Map views removed from the view store",
		},
		[]string{"reason"}, // reason: "capacity", "expired", "released"
	)

	// ViewLookups mirrors the view store's cumulative lookup counts. The
	// janitor publishes them on every sweep.
	ViewLookups = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "map_view_lookups",
			Help: "View store lookups since start, by result",
		},
		[]string{"result"}, // result: "hit", "miss"
	)

	MapOverlaysLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "map_overlays_live",
			Help: "Map overlays (polylines, markers, popups) currently drawn across all views",
		},
	)

	RouteExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_exports_total",
			Help: "Route downloads by format",
		},
		[]string{"format"},
	)
)

// RecordBackendRequest records one backend round trip.
// errorType is empty on success.
func RecordBackendRequest(operation string, duration time.Duration, errorType string) {
	BackendRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if errorType != "" {
		BackendRequestErrors.WithLabelValues(operation, errorType).Inc()
	}
}

// RecordAPIRequest records an HTTP request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight HTTP requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordViewLoad records the outcome of a load sequence that was applied.
func RecordViewLoad(outcome string, duration time.Duration) {
	ViewLoads.WithLabelValues(outcome).Inc()
	ViewLoadDuration.Observe(duration.Seconds())
}

// RecordViewLookups publishes the view store's hit and miss counts.
func RecordViewLookups(hits, misses int64) {
	ViewLookups.WithLabelValues("hit").Set(float64(hits))
	ViewLookups.WithLabelValues("miss").Set(float64(misses))
}

// RecordViewEviction records a view leaving the store.
func RecordViewEviction(reason string) {
	ViewEvictions.WithLabelValues(reason).Inc()
}
