package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
	"github.com/transport-service/internal/usecase/dto"
)

// MapMatchUseCase - привязка GPS трека к дорожному графу
type MapMatchUseCase struct {
	engine     repository.RoutingEngine
	accountant *Accountant
	logger     *zap.Logger
}

func NewMapMatchUseCase(
	engine repository.RoutingEngine,
	accountant *Accountant,
	logger *zap.Logger,
) *MapMatchUseCase {
	return &MapMatchUseCase{
		engine:     engine,
		accountant: accountant,
		logger:     logger,
	}
}

// TraceRoute возвращает маршрут по треку
func (uc *MapMatchUseCase) TraceRoute(ctx context.Context, req dto.RawRequest) (*domain.EngineResponse, error) {
	return uc.match(ctx, domain.OperationTraceRoute, req, uc.engine.TraceRoute)
}

// TraceAttributes возвращает атрибуты рёбер вдоль трека
func (uc *MapMatchUseCase) TraceAttributes(ctx context.Context, req dto.RawRequest) (*domain.EngineResponse, error) {
	return uc.match(ctx, domain.OperationTraceAttributes, req, uc.engine.TraceAttributes)
}

func (uc *MapMatchUseCase) match(
	ctx context.Context,
	op domain.Operation,
	req dto.RawRequest,
	send func(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error),
) (*domain.EngineResponse, error) {
	s, err := lookup(op, req.Meta.Encoding)
	if err != nil {
		return nil, err
	}

	values, err := validate(op, s, req.Fields)
	if err != nil {
		return nil, err
	}

	payload := TracePayload(values)
	shape, _ := payload["shape"].([]any)
	costing, _ := payload["costing"].(string)

	uc.logger.Debug("Map matching request validated",
		zap.String("request_id", req.Meta.RequestID),
		zap.String("operation", string(op)),
		zap.String("encoding", string(req.Meta.Encoding)),
		zap.Int("shape_points", len(shape)),
	)

	return callEngine(ctx, uc.accountant, engineCall{
		meta:      req.Meta,
		operation: op,
		costing:   costing,
		rows:      len(shape),
	}, func(ctx context.Context) (*domain.EngineResponse, error) {
		return send(ctx, payload)
	})
}
