package reservation

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = fmt.Errorf("reservation.repository: %w", domain.ErrReservationNotFound)

	// ErrLockTimeout блокировка ресурса не получена за lock_timeout
	ErrLockTimeout = fmt.Errorf("reservation.repository: lock timeout: %w", domain.ErrResourceBusy)

	// ErrOverlap сработало ограничение на пересечение подтвержденных броней
	ErrOverlap = fmt.Errorf("reservation.repository: overlapping reservation: %w", domain.ErrSlotUnavailable)

	// ErrNotInTransaction блокировка ресурса возможна только внутри транзакции
	ErrNotInTransaction = errors.New("reservation.repository: resource lock requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

const (
	codeLockNotAvailable   = "55P03"
	codeExclusionViolation = "23P01"
)

// mapPQError переводит коды Postgres в ошибки репозитория; nil если код не распознан
func mapPQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch string(pqErr.Code) {
	case codeLockNotAvailable:
		return ErrLockTimeout
	case codeExclusionViolation:
		return ErrOverlap
	}
	return nil
}
