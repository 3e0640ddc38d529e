package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	LockResource(ctx context.Context, resourceID string) error
	Update(ctx context.Context, reservation *domain.Reservation) error
}

// ResourceRegistry реестр ресурсов
type ResourceRegistry interface {
	Get(id string) (*domain.Resource, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ResourceLocker блокировка ресурса внутри процесса
type ResourceLocker interface {
	Acquire(ctx context.Context, key string, wait time.Duration) (lock.Release, error)
}

// Metrics счетчики операций
type Metrics interface {
	RecordReservationOp(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
