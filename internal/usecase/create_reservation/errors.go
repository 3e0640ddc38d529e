package create_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_reservation: %w", domain.ErrValidation)

	// ErrSlotUnavailable слот пересекается с подтвержденной бронью
	ErrSlotUnavailable = domain.ErrSlotUnavailable

	// ErrResourceBusy ресурс заблокирован другой операцией, можно повторить
	ErrResourceBusy = domain.ErrResourceBusy

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
