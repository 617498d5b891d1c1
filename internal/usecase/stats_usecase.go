package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
	apperrors "github.com/transport-service/internal/pkg/errors"
	"github.com/transport-service/internal/usecase/dto"
)

// StatsUseCase обрабатывает бизнес-логику для статистики использования движка
type StatsUseCase struct {
	usageRepo repository.UsageRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	usageRepo repository.UsageRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		usageRepo: usageRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// GetUsage возвращает статистику, используя кеш когда возможно
func (uc *StatsUseCase) GetUsage(ctx context.Context) (*dto.UsageResponse, error) {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetUsage(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Usage fetched from cache")
		return toUsageResponse(cached, true), nil
	}

	if err != nil {
		uc.logger.Warn("Failed to get usage from cache", zap.Error(err))
	}

	// 2. Получаем счётчики
	stats, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Кешируем
	if err := uc.cacheRepo.SetUsage(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache usage", zap.Error(err))
		// Не возвращаем ошибку, т.к. данные уже получены
	}

	return toUsageResponse(stats, false), nil
}

// RefreshUsage сбрасывает кеш и перечитывает счётчики
func (uc *StatsUseCase) RefreshUsage(ctx context.Context) (*dto.UsageResponse, error) {
	uc.logger.Info("Refreshing usage statistics")

	if err := uc.cacheRepo.InvalidateUsage(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate usage cache", zap.Error(err))
	}

	stats, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetUsage(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache refreshed usage", zap.Error(err))
	}

	return toUsageResponse(stats, false), nil
}

func (uc *StatsUseCase) load(ctx context.Context) (*domain.UsageStats, error) {
	stats, err := uc.usageRepo.GetUsage(ctx)
	if err != nil {
		uc.logger.Error("Failed to load usage counters", zap.Error(err))
		return nil, fmt.Errorf("load usage: %w", apperrors.ErrStatsUnavailable.WithDetails(map[string]any{
			"reason": err.Error(),
		}))
	}
	return stats, nil
}

func toUsageResponse(stats *domain.UsageStats, cached bool) *dto.UsageResponse {
	resp := &dto.UsageResponse{
		Operations: stats.Operations,
		Costings:   stats.Costings,
		Cached:     cached,
	}
	if resp.Operations == nil {
		resp.Operations = map[string]domain.OperationStats{}
	}
	if resp.Costings == nil {
		resp.Costings = map[string]int64{}
	}
	return resp
}
