// Package metrics - метрики Prometheus сервиса.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transport_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Валидация
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_validation_failures_total",
			Help: "Total number of requests rejected by schema validation or decoding",
		},
		[]string{"operation", "kind"},
	)

	// Движок маршрутизации
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_upstream_requests_total",
			Help: "Total number of routing engine requests",
		},
		[]string{"operation", "status_code"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transport_upstream_request_duration_seconds",
			Help:    "Routing engine request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_upstream_errors_total",
			Help: "Total number of routing engine requests without a response",
		},
		[]string{"operation", "reason"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "transport_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Учёт обращений
	AccountingEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_accounting_events_total",
			Help: "Accounting events by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordHTTPRequest учитывает обработанный HTTP запрос
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordValidationFailure - kind: decode или validation
func RecordValidationFailure(operation, kind string) {
	ValidationFailures.WithLabelValues(operation, kind).Inc()
}

// RecordUpstream учитывает обращение к движку; statusCode 0 - ответа нет
func RecordUpstream(operation string, statusCode int, duration time.Duration) {
	UpstreamRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if statusCode == 0 {
		return
	}
	UpstreamRequestsTotal.WithLabelValues(operation, strconv.Itoa(statusCode)).Inc()
}

func RecordUpstreamError(operation, reason string) {
	UpstreamErrors.WithLabelValues(operation, reason).Inc()
}

func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func RecordAccountingEvent(outcome string) {
	AccountingEventsPublished.WithLabelValues(outcome).Inc()
}
