package get_sync_batch

import (
	"context"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

type SyncBatchService interface {
	GetByID(ctx context.Context, id string) (*domain.SyncBatch, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
