// Package worker - фоновые потребители Redis Streams
package worker

import (
	"context"
)

// Worker интерфейс для всех воркеров
type Worker interface {
	// Start блокирует до остановки воркера или отмены контекста
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру завершиться
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
