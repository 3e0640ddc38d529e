package reservations

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = domain.ErrReservationNotFound

	// ErrResourceBusy ресурс заблокирован другой операцией
	ErrResourceBusy = domain.ErrResourceBusy

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reservations: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
