package domain

import (
	"errors"
	"fmt"
)

// Operation - операция движка маршрутизации
type Operation string

const (
	OperationRoute           Operation = "route"
	OperationIsochrone       Operation = "isochrone"
	OperationIsodistance     Operation = "isodistance"
	OperationTraceRoute      Operation = "trace_route"
	OperationTraceAttributes Operation = "trace_attributes"
)

// ContourMetric возвращает ключ метрики контура изолинии: time или distance
func (o Operation) ContourMetric() string {
	if o == OperationIsodistance {
		return "distance"
	}
	return "time"
}

// Payload - канонический запрос к движку
type Payload map[string]any

// EngineResponse - ответ движка, передаётся клиенту без изменений
type EngineResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK - ответ с кодом 2xx
func (r *EngineResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrCircuitOpen - обращения к движку временно отключены circuit breaker
var ErrCircuitOpen = errors.New("routing engine circuit open")

// UpstreamError - движок недоступен или не ответил
type UpstreamError struct {
	Operation Operation
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// HealthStatus - результат проверки зависимостей
type HealthStatus struct {
	Status  string            `json:"status" example:"OK"`
	Details map[string]string `json:"details"`
}

const (
	HealthOK     = "OK"
	HealthFailed = "FAILED"
)
