package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
)

const usageSnapshotKey = "stats:usage"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

// Get возвращает nil без ошибки при промахе
func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetUsage получает снимок статистики из кеша
func (r *cacheRepository) GetUsage(ctx context.Context) (*domain.UsageStats, error) {
	data, err := r.Get(ctx, usageSnapshotKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var stats domain.UsageStats
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal usage from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal usage: %w", err)
	}

	return &stats, nil
}

// SetUsage сохраняет снимок статистики; ttl 0 - без кеширования
func (r *cacheRepository) SetUsage(ctx context.Context, stats *domain.UsageStats, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal usage: %w", err)
	}

	return r.Set(ctx, usageSnapshotKey, data, ttl)
}

func (r *cacheRepository) InvalidateUsage(ctx context.Context) error {
	return r.Delete(ctx, usageSnapshotKey)
}
