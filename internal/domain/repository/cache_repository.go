package repository

import (
	"context"
	"time"

	"github.com/transport-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetUsage получает снимок статистики из кеша; nil при промахе
	GetUsage(ctx context.Context) (*domain.UsageStats, error)

	// SetUsage сохраняет снимок статистики
	SetUsage(ctx context.Context, stats *domain.UsageStats, ttl time.Duration) error

	// InvalidateUsage сбрасывает снимок статистики
	InvalidateUsage(ctx context.Context) error
}
