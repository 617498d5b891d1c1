// Package accounting - воркер, переносящий события учёта из стрима в счётчики
package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
	"github.com/transport-service/internal/pkg/validator"
	"github.com/transport-service/internal/worker"
)

const (
	retryDelay = 200 * time.Millisecond

	// DeadLetterSuffix - суффикс стрима для событий, не записанных и после повторной доставки
	DeadLetterSuffix = ":dlq"
)

// deadLetter - запись в стриме <stream>:dlq
type deadLetter struct {
	MessageID string          `json:"message_id"`
	Event     json.RawMessage `json:"event"`
	Error     string          `json:"error"`
	FailedAt  time.Time       `json:"failed_at"`
}

// Worker читает стрим учёта и увеличивает счётчики использования
type Worker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	usageRepo  repository.UsageRepository
	maxRetries int
}

// NewWorker создает воркер учёта
func NewWorker(
	streamRepo repository.StreamRepository,
	usageRepo repository.UsageRepository,
	stream string,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *Worker {
	if stream == "" {
		stream = domain.StreamAccounting
	}
	return &Worker{
		BaseWorker: worker.NewBaseWorker("accounting", stream, consumerGroup, logger),
		streamRepo: streamRepo,
		usageRepo:  usageRepo,
		maxRetries: maxRetries,
	}
}

// Start запускает воркер
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting accounting worker",
		zap.String("stream", w.Stream()),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	runCtx, cancel := w.RunContext(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(runCtx, w.Stream(), w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return nil
			}
			w.handle(runCtx, msg)
		}
	}
}

// DeadLetterStream - стрим, куда уходят события после исчерпания повторов
func (w *Worker) DeadLetterStream() string {
	return w.Stream() + DeadLetterSuffix
}

// handle учитывает одно сообщение. Битые сообщения подтверждаются, чтобы
// не застревать в pending. При ошибке записи первая доставка остаётся в pending
// и позже забирается повторно; повторная доставка с ошибкой уходит в DLQ.
func (w *Worker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	event, err := parseEvent(msg)
	if err != nil {
		logger.Warn("Invalid accounting message, skipping", zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	if err := w.record(ctx, event); err != nil {
		if !msg.Reclaimed {
			logger.Error("Failed to record accounting event, left pending",
				zap.String("ticket", event.Ticket),
				zap.Error(err))
			return
		}
		w.deadLetter(ctx, msg, err)
		return
	}

	w.ack(ctx, msg.ID)
}

// deadLetter переносит событие в DLQ и подтверждает его; если публикация
// не удалась, сообщение остаётся в pending до следующего захвата
func (w *Worker) deadLetter(ctx context.Context, msg domain.StreamMessage, cause error) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	err := w.streamRepo.PublishToStream(ctx, w.DeadLetterStream(), deadLetter{
		MessageID: msg.ID,
		Event:     json.RawMessage(msg.Data),
		Error:     cause.Error(),
		FailedAt:  time.Now().UTC(),
	})
	if err != nil {
		logger.Error("Failed to dead-letter accounting event", zap.Error(err))
		return
	}

	logger.Warn("Accounting event moved to dead-letter stream",
		zap.String("dead_letter_stream", w.DeadLetterStream()),
		zap.Error(cause))
	w.ack(ctx, msg.ID)
}

func (w *Worker) record(ctx context.Context, event *domain.AccountingEvent) error {
	var err error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = w.usageRepo.Record(ctx, event); err == nil {
			return nil
		}
		w.Logger().Warn("Record attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return err
}

func (w *Worker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, w.Stream(), w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}

func parseEvent(msg domain.StreamMessage) (*domain.AccountingEvent, error) {
	var event domain.AccountingEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := validator.Validate(&event); err != nil {
		return nil, err
	}
	return &event, nil
}
