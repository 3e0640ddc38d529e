package create_reservation

import (
	"context"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-BayBookingService/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
