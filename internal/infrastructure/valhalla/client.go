package valhalla

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/transport-service/internal/config"
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
	"github.com/transport-service/internal/pkg/metrics"
)

const breakerName = "valhalla"

// maxResponseSize - ограничение на размер ответа движка
const maxResponseSize = 64 << 20

// errServerStatus - ответ 5xx; учитывается breaker как неудача,
// но сам ответ отдаётся клиенту
var errServerStatus = errors.New("routing engine server error")

// errResponseTooLarge - ответ больше maxBody; обрезанный ответ не отдаётся
var errResponseTooLarge = errors.New("routing engine response too large")

type client struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker[*domain.EngineResponse]
	logger     *zap.Logger
	maxBody    int64
}

// NewValhallaClient создает клиент Valhalla с circuit breaker
func NewValhallaClient(cfg *config.ValhallaConfig, logger *zap.Logger) repository.RoutingEngine {
	return newClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

func newClient(cfg *config.ValhallaConfig, httpClient *http.Client, logger *zap.Logger) *client {
	metrics.SetCircuitBreakerState(breakerName, 0)

	failures := cfg.Breaker.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}

	cb := gobreaker.NewCircuitBreaker[*domain.EngineResponse](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.SetCircuitBreakerState(name, stateToInt(to))
		},
	})

	return &client{
		httpClient: httpClient,
		baseURL:    cfg.URL,
		cb:         cb,
		logger:     logger,
		maxBody:    maxResponseSize,
	}
}

func (c *client) Route(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error) {
	return c.post(ctx, domain.OperationRoute, "route", payload)
}

func (c *client) TraceRoute(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error) {
	return c.post(ctx, domain.OperationTraceRoute, "trace_route", payload)
}

func (c *client) TraceAttributes(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error) {
	return c.post(ctx, domain.OperationTraceAttributes, "trace_attributes", payload)
}

// Isochrone - изолинии запрашиваются GET-запросом с JSON в параметре json
func (c *client) Isochrone(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/isochrone?json=%s", c.baseURL, url.QueryEscape(string(body)))
	return c.do(ctx, domain.OperationIsochrone, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
}

// Status проверяет /status движка в обход circuit breaker
func (c *client) Status(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	c.logger.Debug("Valhalla status OK", zap.String("url", c.baseURL))
	return nil
}

func (c *client) post(ctx context.Context, op domain.Operation, endpoint string, payload domain.Payload) (*domain.EngineResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	target := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	return c.do(ctx, op, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
}

// do выполняет один запрос через circuit breaker, без повторов
func (c *client) do(ctx context.Context, op domain.Operation, build func() (*http.Request, error)) (*domain.EngineResponse, error) {
	id := uuid.NewString()
	start := time.Now()

	c.logger.Info("Requesting Valhalla",
		zap.String("id", id),
		zap.String("operation", string(op)))

	resp, err := c.cb.Execute(func() (*domain.EngineResponse, error) {
		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxBody+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		if int64(len(body)) > c.maxBody {
			return nil, fmt.Errorf("%w: over %d bytes", errResponseTooLarge, c.maxBody)
		}

		out := &domain.EngineResponse{
			StatusCode:  httpResp.StatusCode,
			ContentType: httpResp.Header.Get("Content-Type"),
			Body:        body,
		}
		if httpResp.StatusCode >= http.StatusInternalServerError {
			return out, errServerStatus
		}
		return out, nil
	})

	if errors.Is(err, errServerStatus) && resp != nil {
		err = nil
	}

	if err != nil {
		reason := "transport"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			reason = "circuit_open"
			err = fmt.Errorf("%w: %v", domain.ErrCircuitOpen, err)
		}
		metrics.RecordUpstreamError(string(op), reason)
		metrics.RecordUpstream(string(op), 0, time.Since(start))

		c.logger.Error("Valhalla request failed",
			zap.String("id", id),
			zap.String("operation", string(op)),
			zap.String("reason", reason),
			zap.Error(err))
		return nil, &domain.UpstreamError{Operation: op, Err: err}
	}

	metrics.RecordUpstream(string(op), resp.StatusCode, time.Since(start))
	c.logger.Info("Valhalla responded",
		zap.String("id", id),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return resp, nil
}

func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
