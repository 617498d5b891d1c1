package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
	"github.com/transport-service/internal/usecase/dto"
)

// IsolineUseCase - изохроны и изодистанты
type IsolineUseCase struct {
	engine     repository.RoutingEngine
	accountant *Accountant
	logger     *zap.Logger
}

func NewIsolineUseCase(
	engine repository.RoutingEngine,
	accountant *Accountant,
	logger *zap.Logger,
) *IsolineUseCase {
	return &IsolineUseCase{
		engine:     engine,
		accountant: accountant,
		logger:     logger,
	}
}

// Isoline строит контуры для операции isochrone (время) или isodistance (расстояние).
// Оба варианта идут в один endpoint движка и отличаются только метрикой контуров.
func (uc *IsolineUseCase) Isoline(ctx context.Context, op domain.Operation, req dto.RawRequest) (*domain.EngineResponse, error) {
	s, err := lookup(op, req.Meta.Encoding)
	if err != nil {
		return nil, err
	}

	values, err := validate(op, s, req.Fields)
	if err != nil {
		return nil, err
	}

	payload := IsolinePayload(op, values)
	contours, _ := payload["contours"].([]any)
	costing, _ := values["costing"].(string)

	uc.logger.Debug("Isoline request validated",
		zap.String("request_id", req.Meta.RequestID),
		zap.String("operation", string(op)),
		zap.String("costing", costing),
		zap.Int("contours", len(contours)),
	)

	return callEngine(ctx, uc.accountant, engineCall{
		meta:      req.Meta,
		operation: op,
		costing:   costing,
		rows:      len(contours),
	}, func(ctx context.Context) (*domain.EngineResponse, error) {
		return uc.engine.Isochrone(ctx, payload)
	})
}
