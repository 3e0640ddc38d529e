package confirm_reservation

import (
	"errors"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var (
	// ErrReservationNotFound бронь не найдена
	ErrReservationNotFound = domain.ErrReservationNotFound

	// ErrCannotConfirm отмененную бронь подтвердить нельзя
	ErrCannotConfirm = domain.ErrInvalidTransition

	// ErrSlotUnavailable интервал брони занят подтвержденной бронью
	ErrSlotUnavailable = domain.ErrSlotUnavailable

	// ErrResourceBusy ресурс заблокирован другой операцией
	ErrResourceBusy = domain.ErrResourceBusy

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_reservation: internal error")
)
