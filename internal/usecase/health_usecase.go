package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
)

const engineComponent = "valhalla"

// HealthCheck - проверка одной зависимости
type HealthCheck func(ctx context.Context) error

type namedCheck struct {
	name  string
	check HealthCheck
}

// HealthUseCase проверяет движок и дополнительные зависимости
type HealthUseCase struct {
	engine  repository.RoutingEngine
	checks  []namedCheck
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthUseCase(engine repository.RoutingEngine, logger *zap.Logger) *HealthUseCase {
	return &HealthUseCase{
		engine:  engine,
		timeout: 5 * time.Second,
		logger:  logger,
	}
}

// AddCheck регистрирует дополнительную проверку (например, redis)
func (uc *HealthUseCase) AddCheck(name string, check HealthCheck) *HealthUseCase {
	uc.checks = append(uc.checks, namedCheck{name: name, check: check})
	return uc
}

// Check выполняет проверки последовательно. В details для каждой
// зависимости либо OK, либо причина отказа.
func (uc *HealthUseCase) Check(ctx context.Context) *domain.HealthStatus {
	uc.logger.Info("Performing health checks")

	status := &domain.HealthStatus{
		Status:  domain.HealthOK,
		Details: make(map[string]string, len(uc.checks)+1),
	}

	checks := append([]namedCheck{{name: engineComponent, check: uc.engine.Status}}, uc.checks...)
	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, uc.timeout)
		err := c.check(checkCtx)
		cancel()

		if err != nil {
			uc.logger.Warn("Health check failed", zap.String("component", c.name), zap.Error(err))
			status.Details[c.name] = err.Error()
			status.Status = domain.HealthFailed
			continue
		}
		status.Details[c.name] = domain.HealthOK
	}

	return status
}
