package trigger_sync

import (
	"context"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

type SyncTrigger interface {
	Trigger(ctx context.Context, trigger string) (*domain.SyncBatch, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
