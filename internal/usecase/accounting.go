package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
	apperrors "github.com/transport-service/internal/pkg/errors"
	"github.com/transport-service/internal/pkg/metrics"
	"github.com/transport-service/internal/usecase/dto"
)

// Accountant пишет строку учёта по каждому обращению к движку
// и, если задан publisher, публикует событие в стрим.
type Accountant struct {
	publisher repository.AccountingPublisher
	logger    *zap.Logger
}

// NewAccountant создает Accountant; publisher может быть nil
func NewAccountant(publisher repository.AccountingPublisher, logger *zap.Logger) *Accountant {
	return &Accountant{
		publisher: publisher,
		logger:    logger.Named("accounting"),
	}
}

// Record логирует событие и публикует его.
// Ошибка публикации не влияет на ответ клиенту.
func (a *Accountant) Record(ctx context.Context, event *domain.AccountingEvent) {
	a.logger.Info("Engine call",
		zap.String("ticket", event.Ticket),
		zap.String("operation", string(event.Operation)),
		zap.String("costing", event.Costing),
		zap.Bool("success", event.Success),
		zap.Int("status_code", event.StatusCode),
		zap.String("execution_start", event.ExecutionStart.Format("2006-01-02 15:04:05")),
		zap.Float64("execution_time", event.ExecutionTime),
		zap.Int("rows", event.Rows),
		zap.String("remote_addr", event.RemoteAddr),
		zap.String("comment", event.Comment),
	)

	if a.publisher == nil {
		return
	}

	if err := a.publisher.Publish(ctx, event); err != nil {
		metrics.RecordAccountingEvent("failed")
		a.logger.Warn("Failed to publish accounting event",
			zap.String("ticket", event.Ticket),
			zap.Error(err),
		)
		return
	}
	metrics.RecordAccountingEvent("published")
}

// engineCall - одно обращение к движку для учёта
type engineCall struct {
	meta      dto.RequestMeta
	operation domain.Operation
	costing   string
	rows      int
}

// callEngine выполняет обращение к движку, учитывает его и переводит
// отсутствие ответа в ошибку приложения
func callEngine(
	ctx context.Context,
	accountant *Accountant,
	call engineCall,
	fn func(ctx context.Context) (*domain.EngineResponse, error),
) (*domain.EngineResponse, error) {
	start := time.Now()
	resp, err := fn(ctx)

	event := &domain.AccountingEvent{
		Ticket:         ticket(call.meta.RequestID),
		Operation:      call.operation,
		Costing:        call.costing,
		ExecutionStart: start.UTC(),
		ExecutionTime:  time.Since(start).Seconds(),
		Rows:           call.rows,
		RemoteAddr:     call.meta.RemoteAddr,
	}
	if resp != nil {
		event.StatusCode = resp.StatusCode
		event.Success = err == nil && resp.OK()
	}
	if err != nil {
		event.Comment = err.Error()
	}

	if accountant != nil {
		accountant.Record(ctx, event)
	}

	if err != nil {
		details := map[string]any{"operation": string(call.operation)}
		if errors.Is(err, domain.ErrCircuitOpen) {
			return nil, apperrors.ErrUpstreamCircuitOpen.WithDetails(details)
		}
		return nil, apperrors.ErrUpstreamUnavailable.WithDetails(details)
	}
	return resp, nil
}

// ticket - идентификатор запроса, если это UUID, иначе новый
func ticket(requestID string) string {
	if _, err := uuid.Parse(requestID); err == nil {
		return requestID
	}
	return uuid.NewString()
}
