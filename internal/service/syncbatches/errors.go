package syncbatches

import (
	"errors"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var (
	// ErrBatchNotFound возвращается, когда тик не найден
	ErrBatchNotFound = domain.ErrSyncBatchNotFound

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("syncbatches: internal error")
)
