package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
)

const (
	// хэш счётчиков операций: поля <operation>:total, <operation>:failed, <operation>:time_sec
	usageOperationsKey = "usage:operations"
	// хэш счётчиков по costing
	usageCostingsKey = "usage:costings"

	fieldLastUpdated = "last_updated"
)

type usageRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewUsageRepository создает счётчики использования в Redis
func NewUsageRepository(client *redis.Client, logger *zap.Logger) repository.UsageRepository {
	return &usageRepository{
		client: client,
		logger: logger,
	}
}

// Record увеличивает счётчики одной транзакцией
func (r *usageRepository) Record(ctx context.Context, event *domain.AccountingEvent) error {
	op := string(event.Operation)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, usageOperationsKey, op+":total", 1)
		if !event.Success {
			pipe.HIncrBy(ctx, usageOperationsKey, op+":failed", 1)
		}
		pipe.HIncrByFloat(ctx, usageOperationsKey, op+":time_sec", event.ExecutionTime)
		pipe.HSet(ctx, usageOperationsKey, fieldLastUpdated, time.Now().Unix())
		if event.Costing != "" {
			pipe.HIncrBy(ctx, usageCostingsKey, event.Costing, 1)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to record usage",
			zap.String("ticket", event.Ticket),
			zap.Error(err))
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// GetUsage читает оба хэша и собирает статистику
func (r *usageRepository) GetUsage(ctx context.Context) (*domain.UsageStats, error) {
	var opsCmd, costingsCmd *redis.MapStringStringCmd
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		opsCmd = pipe.HGetAll(ctx, usageOperationsKey)
		costingsCmd = pipe.HGetAll(ctx, usageCostingsKey)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get usage: %w", err)
	}

	stats := &domain.UsageStats{
		Operations: map[string]domain.OperationStats{},
		Costings:   map[string]int64{},
	}

	for field, value := range opsCmd.Val() {
		if field == fieldLastUpdated {
			if ts, err := strconv.ParseInt(value, 10, 64); err == nil {
				updated := time.Unix(ts, 0).UTC()
				stats.LastUpdated = &updated
			}
			continue
		}

		op, counter, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		s := stats.Operations[op]
		switch counter {
		case "total":
			s.Total, _ = strconv.ParseInt(value, 10, 64)
		case "failed":
			s.Failed, _ = strconv.ParseInt(value, 10, 64)
		case "time_sec":
			s.TotalTimeSec, _ = strconv.ParseFloat(value, 64)
		default:
			continue
		}
		stats.Operations[op] = s
	}

	for op, s := range stats.Operations {
		if s.Total > 0 {
			s.AvgTimeSec = s.TotalTimeSec / float64(s.Total)
			stats.Operations[op] = s
		}
	}

	for costing, value := range costingsCmd.Val() {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			r.logger.Warn("Invalid costing counter", zap.String("costing", costing), zap.String("value", value))
			continue
		}
		stats.Costings[costing] = n
	}

	return stats, nil
}
