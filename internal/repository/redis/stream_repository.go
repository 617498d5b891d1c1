package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
)

// StreamOptions - параметры чтения из consumer group
type StreamOptions struct {
	// BatchSize - сколько сообщений забирать за один XREADGROUP
	BatchSize int64
	// Block - сколько ждать новых сообщений
	Block time.Duration
	// ClaimMinIdle - через сколько неподтверждённое сообщение забирается повторно
	ClaimMinIdle time.Duration
}

// DefaultStreamOptions используются, если параметры не заданы
var DefaultStreamOptions = StreamOptions{
	BatchSize:    10,
	Block:        time.Second,
	ClaimMinIdle: 30 * time.Second,
}

type streamRepository struct {
	client *redis.Client
	opts   StreamOptions
	logger *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository
func NewStreamRepository(client *redis.Client, opts StreamOptions, logger *zap.Logger) repository.StreamRepository {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultStreamOptions.BatchSize
	}
	if opts.Block <= 0 {
		opts.Block = DefaultStreamOptions.Block
	}
	if opts.ClaimMinIdle <= 0 {
		opts.ClaimMinIdle = DefaultStreamOptions.ClaimMinIdle
	}
	return &streamRepository{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// "$" - только новые сообщения; MKSTREAM создаст стрим, если его нет
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает сообщения из стрима через consumer group.
// Перед каждым чтением новых сообщений забирает (XAUTOCLAIM) сообщения,
// которые провисели в pending дольше ClaimMinIdle; они приходят с Reclaimed=true.
// Канал закрывается при отмене контекста.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	msgChan := make(chan domain.StreamMessage, r.opts.BatchSize)

	go func() {
		defer close(msgChan)

		claimCursor := "0-0"
		for {
			if ctx.Err() != nil {
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			}

			claimed, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
				Stream:   stream,
				Group:    group,
				Consumer: consumer,
				MinIdle:  r.opts.ClaimMinIdle,
				Start:    claimCursor,
				Count:    r.opts.BatchSize,
			}).Result()
			switch {
			case err == nil:
				claimCursor = next
				if len(claimed) > 0 {
					r.logger.Info("Reclaimed pending messages",
						zap.String("stream", stream),
						zap.Int("count", len(claimed)))
				}
				if !r.deliver(ctx, stream, group, claimed, true, msgChan) {
					return
				}
			case ctx.Err() != nil:
				return
			default:
				claimCursor = "0-0"
				r.logger.Warn("Failed to reclaim pending messages",
					zap.String("stream", stream),
					zap.Error(err))
			}

			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    r.opts.BatchSize,
				Block:    r.opts.Block,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))

				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
				continue
			}

			for _, s := range result {
				if !r.deliver(ctx, stream, group, s.Messages, false, msgChan) {
					return
				}
			}
		}
	}()

	return msgChan, nil
}

// deliver отправляет сообщения в канал; false - контекст отменён.
// Сообщение без поля "data" подтверждается сразу, иначе оно вечно висело бы в pending.
func (r *streamRepository) deliver(
	ctx context.Context,
	stream, group string,
	messages []redis.XMessage,
	reclaimed bool,
	msgChan chan<- domain.StreamMessage,
) bool {
	for _, msg := range messages {
		data, ok := msg.Values["data"].(string)
		if !ok {
			r.logger.Warn("Message does not contain 'data' field",
				zap.String("message_id", msg.ID))
			_ = r.AckMessage(ctx, stream, group, msg.ID)
			continue
		}

		select {
		case msgChan <- domain.StreamMessage{ID: msg.ID, Data: data, Reclaimed: reclaimed}:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// PublishToStream публикует JSON в поле "data" сообщения
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"data": string(jsonData)},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
