package syncbatch

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var (
	// ErrBatchNotFound запись о тике не найдена
	ErrBatchNotFound = fmt.Errorf("syncbatch.repository: %w", domain.ErrSyncBatchNotFound)

	// ErrBatchCompleted тик уже закрыт и не меняется
	ErrBatchCompleted = errors.New("syncbatch.repository: sync batch already completed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("syncbatch.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("syncbatch.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("syncbatch.repository: failed to scan row")
)
