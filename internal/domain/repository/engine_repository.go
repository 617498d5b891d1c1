package repository

import (
	"context"

	"github.com/transport-service/internal/domain"
)

// RoutingEngine - внешний движок маршрутизации (Valhalla).
// Ответ движка с любым кодом возвращается как есть; ошибка означает,
// что ответа нет (сеть, таймаут, открытый circuit breaker).
type RoutingEngine interface {
	Route(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error)
	Isochrone(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error)
	TraceRoute(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error)
	TraceAttributes(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error)

	// Status проверяет доступность движка
	Status(ctx context.Context) error
}
