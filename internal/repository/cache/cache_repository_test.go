package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/transport-service/internal/config"
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/repository/cache"
)

func getTestRedis(t *testing.T) *cache.Redis {
	r, err := cache.NewRedis(&config.RedisConfig{Host: "localhost", Port: 6379, DB: 1}, zap.NewNop())
	if err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	return r
}

func TestCacheRepository_Usage(t *testing.T) {
	r := getTestRedis(t)
	defer r.Close()

	ctx := context.Background()
	repo := cache.NewCacheRepository(r)
	require.NoError(t, repo.InvalidateUsage(ctx))

	miss, err := repo.GetUsage(ctx)
	require.NoError(t, err)
	assert.Nil(t, miss)

	updated := time.Now().UTC().Truncate(time.Second)
	stats := &domain.UsageStats{
		Operations: map[string]domain.OperationStats{
			"trace_route": {Total: 4, Failed: 1, TotalTimeSec: 2, AvgTimeSec: 0.5},
		},
		Costings:    map[string]int64{"pedestrian": 4},
		LastUpdated: &updated,
	}
	require.NoError(t, repo.SetUsage(ctx, stats, time.Minute))

	hit, err := repo.GetUsage(ctx)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, stats.Operations, hit.Operations)
	assert.Equal(t, stats.Costings, hit.Costings)
	assert.True(t, updated.Equal(*hit.LastUpdated))

	require.NoError(t, repo.InvalidateUsage(ctx))
	miss, err = repo.GetUsage(ctx)
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestCacheRepository_ZeroTTLSkipsCaching(t *testing.T) {
	r := getTestRedis(t)
	defer r.Close()

	ctx := context.Background()
	repo := cache.NewCacheRepository(r)
	require.NoError(t, repo.InvalidateUsage(ctx))

	require.NoError(t, repo.SetUsage(ctx, &domain.UsageStats{}, 0))

	miss, err := repo.GetUsage(ctx)
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestRedis_Health(t *testing.T) {
	r := getTestRedis(t)
	defer r.Close()

	assert.NoError(t, r.Health(context.Background()))
}
