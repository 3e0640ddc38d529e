package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations/models"
)

// Service сервис чтения и отмены броней
type Service struct {
	repo      ReservationRepository
	registry  ResourceRegistry
	txManager TransactionManager
	locker    ResourceLocker
	lockWait  time.Duration
	metrics   Metrics
	now       func() time.Time
	logger    Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	repo ReservationRepository,
	registry ResourceRegistry,
	txManager TransactionManager,
	locker ResourceLocker,
	lockWait time.Duration,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		registry:  registry,
		txManager: txManager,
		locker:    locker,
		lockWait:  lockWait,
		metrics:   metrics,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock подменяет источник времени
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	s.logger.Info("GetByID: fetching reservation id=%s", id)

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, id)
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return res, nil
}

// List брони с фильтрацией по ресурсу, дате и статусу
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]*domain.Reservation, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.ResourceID != nil {
		if _, err := s.registry.Get(*filter.ResourceID); err != nil {
			return nil, err
		}
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(list))
	return list, nil
}

// Cancel отменяет бронь. Повторная отмена ничего не меняет и возвращает текущее состояние.
// Слот освобождается сразу; удаление внешнего события выполнит синхронизатор.
func (s *Service) Cancel(ctx context.Context, id string) (result *domain.Reservation, err error) {
	defer func() { s.metrics.RecordReservationOp("cancel", domain.ErrorKind(err)) }()

	s.logger.Info("Cancel: cancelling reservation id=%s", id)

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsCancelled() {
		s.logger.Info("Cancel: reservation id=%s already cancelled", id)
		return current, nil
	}

	release, err := s.locker.Acquire(ctx, "resource:"+current.ResourceID, s.lockWait)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			s.logger.Warn("Cancel: resource %s is busy", current.ResourceID)
			return nil, fmt.Errorf("%w: %s", ErrResourceBusy, current.ResourceID)
		}
		return nil, fmt.Errorf("%w: acquire resource lock: %v", ErrInternal, err)
	}
	defer release()

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockResource(txCtx, current.ResourceID); err != nil {
			if errors.Is(err, domain.ErrResourceBusy) {
				return fmt.Errorf("%w: %s", ErrResourceBusy, current.ResourceID)
			}
			return fmt.Errorf("%w: lock resource: %v", ErrInternal, err)
		}

		res, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, domain.ErrReservationNotFound) {
				return fmt.Errorf("%w: %s", ErrReservationNotFound, id)
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		if res.IsCancelled() {
			result = res
			return nil
		}
		// Перенесена на другой ресурс между чтением и блокировкой
		if res.ResourceID != current.ResourceID {
			return fmt.Errorf("%w: %s moved to %s", ErrResourceBusy, id, res.ResourceID)
		}

		now := s.now()
		cancelledAt := now.UTC().Truncate(time.Microsecond)
		res.Status = domain.StatusCancelled
		res.CancelledAt = &cancelledAt
		res.SyncStatus = domain.SyncUnsynced
		res.UpdatedAt = domain.NextModified(res.UpdatedAt, now)

		if err := s.repo.Update(txCtx, res); err != nil {
			s.logger.Error("Cancel: failed to update reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - update: %v", ErrInternal, err)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: reservation id=%s is cancelled", id)
	return result, nil
}
