package confirm_reservation

import (
	"context"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

type ConfirmReservationUseCase interface {
	Execute(ctx context.Context, id string) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
