package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	LockResource(ctx context.Context, resourceID string) error
}

// AvailabilityChecker движок доступности
type AvailabilityChecker interface {
	ValidateDuration(minutes int) error
	CheckSlot(ctx context.Context, req availability.CheckRequest) (*availability.CheckResult, error)
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
