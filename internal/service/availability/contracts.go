package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// ReservationReader чтение броней ресурса на дату
type ReservationReader interface {
	ListByResourceAndDate(ctx context.Context, resourceID string, date time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
}

// ResourceRegistry реестр ресурсов
type ResourceRegistry interface {
	Get(id string) (*domain.Resource, error)
	All() []domain.Resource
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
