package syncbatches

import (
	"context"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// BatchRepository чтение журнала тиков синхронизации
type BatchRepository interface {
	GetByID(ctx context.Context, id string) (*domain.SyncBatch, error)
	List(ctx context.Context, limit int) ([]*domain.SyncBatch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
