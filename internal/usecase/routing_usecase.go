package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
	apperrors "github.com/transport-service/internal/pkg/errors"
	"github.com/transport-service/internal/pkg/form"
	"github.com/transport-service/internal/pkg/metrics"
	"github.com/transport-service/internal/schema"
	"github.com/transport-service/internal/usecase/dto"
)

// RoutingUseCase - построение маршрута для режима передвижения
type RoutingUseCase struct {
	engine     repository.RoutingEngine
	accountant *Accountant
	logger     *zap.Logger
}

func NewRoutingUseCase(
	engine repository.RoutingEngine,
	accountant *Accountant,
	logger *zap.Logger,
) *RoutingUseCase {
	return &RoutingUseCase{
		engine:     engine,
		accountant: accountant,
		logger:     logger,
	}
}

// Route валидирует запрос по схеме режима и передаёт канонический запрос движку.
// Ошибки валидации возвращаются как *form.ValidationError.
func (uc *RoutingUseCase) Route(ctx context.Context, mode domain.Costing, req dto.RawRequest) (*domain.EngineResponse, error) {
	s, ok := schema.Route(mode)
	if !ok {
		return nil, apperrors.ErrUnknownCosting.WithDetails(map[string]any{"costing": string(mode)})
	}

	values, err := validate(domain.OperationRoute, s, req.Fields)
	if err != nil {
		return nil, err
	}

	payload := RoutePayload(mode, values)
	locations, _ := payload["locations"].([]any)

	uc.logger.Debug("Routing request validated",
		zap.String("request_id", req.Meta.RequestID),
		zap.String("costing", string(mode)),
		zap.Int("locations", len(locations)),
	)

	return callEngine(ctx, uc.accountant, engineCall{
		meta:      req.Meta,
		operation: domain.OperationRoute,
		costing:   string(mode),
		rows:      len(locations),
	}, func(ctx context.Context) (*domain.EngineResponse, error) {
		return uc.engine.Route(ctx, payload)
	})
}

// validate проверяет запрос и учитывает отказ в метриках
func validate(op domain.Operation, s *form.Schema, raw map[string]any) (form.Values, error) {
	values, err := form.Validate(s, raw)
	if err != nil {
		metrics.RecordValidationFailure(string(op), "validation")
		return nil, err
	}
	return values, nil
}

// lookup ищет схему операции для способа передачи запроса
func lookup(op domain.Operation, encoding schema.Encoding) (*form.Schema, error) {
	s, ok := schema.Lookup(schema.Key{Operation: op, Encoding: encoding})
	if !ok {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]any{
			"reason": fmt.Sprintf("%s does not accept %s requests", op, encoding),
		})
	}
	return s, nil
}
