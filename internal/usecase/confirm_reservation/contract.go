package confirm_reservation

import (
	"context"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	LockResource(ctx context.Context, resourceID string) error
	Update(ctx context.Context, reservation *domain.Reservation) error
}

// AvailabilityChecker движок доступности
type AvailabilityChecker interface {
	CheckSlot(ctx context.Context, req availability.CheckRequest) (*availability.CheckResult, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
