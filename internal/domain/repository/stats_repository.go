package repository

import (
	"context"

	"github.com/transport-service/internal/domain"
)

// UsageRepository - счётчики использования движка
type UsageRepository interface {
	// Record учитывает одно событие
	Record(ctx context.Context, event *domain.AccountingEvent) error

	// GetUsage возвращает накопленную статистику
	GetUsage(ctx context.Context) (*domain.UsageStats, error)
}
