package modify_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("modify_reservation: %w", domain.ErrValidation)

	// ErrReservationNotFound бронь отсутствует или отменена
	ErrReservationNotFound = domain.ErrReservationNotFound

	// ErrResourceBusy ресурс заблокирован другой операцией, можно повторить
	ErrResourceBusy = domain.ErrResourceBusy

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_reservation: internal error")
)
