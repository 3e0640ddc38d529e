package reconcile

//go:generate mockgen -destination=mocks/mock_calendar.go -package=mocks . CalendarClient

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/integrations/calendar"
)

// ReservationRepository брони, ожидающие синхронизации, и запись результата
type ReservationRepository interface {
	ListPendingSync(ctx context.Context, resourceID string) ([]*domain.Reservation, error)
	RecordSyncResult(ctx context.Context, result domain.SyncResult) (bool, error)
}

// SyncBatchRepository журнал тиков
type SyncBatchRepository interface {
	Create(ctx context.Context, batch *domain.SyncBatch) error
	Complete(ctx context.Context, batch *domain.SyncBatch) error
}

// ResourceRegistry реестр ресурсов
type ResourceRegistry interface {
	All() []domain.Resource
}

// CalendarClient внешний календарь
type CalendarClient interface {
	Authenticate(ctx context.Context) error
	UpsertEvent(ctx context.Context, calendarID string, externalRef *string, event calendar.Event) (string, error)
	DeleteEvent(ctx context.Context, calendarID, externalRef string) error
}

// ResourceLocker аренда ресурса на время тика (в процессе или в Redis)
type ResourceLocker interface {
	Acquire(ctx context.Context, key string, wait time.Duration) (lock.Release, error)
}

// Metrics метрики тиков
type Metrics interface {
	RecordTick(trigger, outcome string, d time.Duration)
	RecordSyncItem(resourceID, action, result string)
	SetLastTick(resourceID string, at time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
