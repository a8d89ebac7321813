// Package metrics provides Prometheus metrics collection for litekeeper.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Global metrics - used by the application
	// Using atomic.Pointer for lock-free initialization checks on hot path metrics.
	requestsTotal     atomic.Pointer[prometheus.CounterVec]
	requestDuration   atomic.Pointer[prometheus.HistogramVec]
	dbOperationsTotal atomic.Pointer[prometheus.CounterVec]
	dbOpDuration      atomic.Pointer[prometheus.HistogramVec]
	authFailuresTotal atomic.Pointer[prometheus.CounterVec]
)

// Init initializes all Prometheus metrics and registers them with the provided registry.
// This should be called once at application startup.
func Init(reg prometheus.Registerer, version string) error {
	// HTTP request counter: all admin API requests by method, route pattern, and status.
	requestsTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "litekeeper",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled by the admin API",
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestsTotalVec); err != nil {
		return fmt.Errorf("failed to register requestsTotal: %w", err)
	}

	requestDurationVec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "litekeeper",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestDurationVec); err != nil {
		return fmt.Errorf("failed to register requestDuration: %w", err)
	}

	// Database operation counter: façade calls by operation and outcome.
	dbOperationsTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "litekeeper",
			Subsystem: "db",
			Name:      "operations_total",
			Help:      "Total number of database operations by outcome",
		},
		[]string{"operation", "status"},
	)
	if err := reg.Register(dbOperationsTotalVec); err != nil {
		return fmt.Errorf("failed to register dbOperationsTotal: %w", err)
	}

	dbOpDurationVec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "litekeeper",
			Subsystem: "db",
			Name:      "operation_duration_seconds",
			Help:      "Database operation latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	if err := reg.Register(dbOpDurationVec); err != nil {
		return fmt.Errorf("failed to register dbOpDuration: %w", err)
	}

	authFailuresTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "litekeeper",
			Subsystem: "http",
			Name:      "auth_failures_total",
			Help:      "Total number of admin token authentication failures",
		},
		[]string{"reason"},
	)
	if err := reg.Register(authFailuresTotalVec); err != nil {
		return fmt.Errorf("failed to register authFailuresTotal: %w", err)
	}

	// Info gauge: static metric with constant label values for build info.
	infoGaugeVec := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "litekeeper",
			Name:      "info",
			Help:      "Litekeeper version information",
		},
		[]string{"version"},
	)
	if err := reg.Register(infoGaugeVec); err != nil {
		return fmt.Errorf("failed to register infoGauge: %w", err)
	}
	infoGaugeVec.WithLabelValues(version).Set(1)

	// Store metrics in atomics for lock-free access in record functions
	requestsTotal.Store(requestsTotalVec)
	requestDuration.Store(requestDurationVec)
	dbOperationsTotal.Store(dbOperationsTotalVec)
	dbOpDuration.Store(dbOpDurationVec)
	authFailuresTotal.Store(authFailuresTotalVec)

	return nil
}

// RecordRequest increments the requests counter for the given method, route pattern, and status.
// Uses atomic.Pointer for lock-free nil checks; Prometheus operations themselves are thread-safe.
func RecordRequest(method, path, statusCode string) {
	if counter := requestsTotal.Load(); counter != nil {
		counter.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordRequestDuration records the latency for a request, in seconds.
func RecordRequestDuration(method, path, statusCode string, durationSeconds float64) {
	if histogram := requestDuration.Load(); histogram != nil {
		histogram.WithLabelValues(method, path, statusCode).Observe(durationSeconds)
	}
}

// RecordDBOperation increments the database operation counter.
// Operation is one of: exec, count_rows, max_int_value, clear_table, ping.
// Status is "ok" or "error".
func RecordDBOperation(operation, status string, durationSeconds float64) {
	if counter := dbOperationsTotal.Load(); counter != nil {
		counter.WithLabelValues(operation, status).Inc()
	}
	if histogram := dbOpDuration.Load(); histogram != nil {
		histogram.WithLabelValues(operation).Observe(durationSeconds)
	}
}

// RecordAuthFailure increments the auth failures counter for the given reason.
// Common reasons: "missing_token", "invalid_token".
func RecordAuthFailure(reason string) {
	if counter := authFailuresTotal.Load(); counter != nil {
		counter.WithLabelValues(reason).Inc()
	}
}

// Handler returns an HTTP handler for Prometheus metrics in text format.
// This handler should be registered at /metrics on the metrics listener.
func Handler() http.Handler {
	return promhttp.Handler()
}

// GetMetricsText returns the Prometheus text-format output from a registry.
// This is useful for testing and debugging.
func GetMetricsText(reg prometheus.Gatherer) (string, error) {
	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	body, err := io.ReadAll(w.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read metrics output: %w", err)
	}

	return string(body), nil
}
