package list_sync_batches

import (
	"context"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

type SyncBatchService interface {
	List(ctx context.Context, limit int) ([]*domain.SyncBatch, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
