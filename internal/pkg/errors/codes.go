package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUnknownCosting = New(
		"UNKNOWN_COSTING",
		"Unsupported costing model",
		http.StatusNotFound,
	)

	ErrUpstreamUnavailable = New(
		"UPSTREAM_UNAVAILABLE",
		"Routing engine is unavailable",
		http.StatusBadGateway,
	)

	ErrUpstreamCircuitOpen = New(
		"UPSTREAM_CIRCUIT_OPEN",
		"Routing engine is temporarily disabled after repeated failures",
		http.StatusServiceUnavailable,
	)

	ErrStatsUnavailable = New(
		"STATS_UNAVAILABLE",
		"Usage statistics are not available",
		http.StatusServiceUnavailable,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
