package memory

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var (
	// ErrReservationNotFound бронь не найдена
	ErrReservationNotFound = fmt.Errorf("memory.repository: %w", domain.ErrReservationNotFound)

	// ErrAlreadyExists бронь с таким идентификатором уже есть
	ErrAlreadyExists = errors.New("memory.repository: reservation already exists")

	// ErrBatchNotFound запись о синхронизации не найдена
	ErrBatchNotFound = fmt.Errorf("memory.repository: %w", domain.ErrSyncBatchNotFound)

	// ErrBatchCompleted запись о синхронизации уже закрыта
	ErrBatchCompleted = errors.New("memory.repository: sync batch already completed")
)
