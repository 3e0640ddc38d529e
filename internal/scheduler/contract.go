package scheduler

import (
	"context"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// Reconciler один тик синхронизации
type Reconciler interface {
	Execute(ctx context.Context, trigger string) (*domain.SyncBatch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
