package confirm_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

// UseCase перевод PENDING -> CONFIRMED
type UseCase struct {
	repo         ReservationRepository
	availability AvailabilityChecker
	txManager    TransactionManager
	locker       lock.Locker
	lockWait     time.Duration
	metrics      Metrics
	now          func() time.Time
	logger       Logger
}

func NewUseCase(
	repo ReservationRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	locker lock.Locker,
	lockWait time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		availability: availability,
		txManager:    txManager,
		locker:       locker,
		lockWait:     lockWait,
		metrics:      metrics,
		now:          time.Now,
		logger:       logger,
	}
}

// Execute подтверждает бронь, заново проверяя слот под блокировкой ресурса.
// Уже подтвержденная бронь возвращается без изменений.
func (uc *UseCase) Execute(ctx context.Context, id string) (result *domain.Reservation, err error) {
	defer func() { uc.metrics.RecordReservationOp("confirm", domain.ErrorKind(err)) }()

	uc.logger.Info("ConfirmReservation: id=%s", id)

	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch current.Status {
	case domain.StatusConfirmed:
		return current, nil
	case domain.StatusCancelled:
		uc.logger.Warn("ConfirmReservation: reservation %s is cancelled", id)
		return nil, fmt.Errorf("%w: %s is cancelled", ErrCannotConfirm, id)
	}

	release, err := uc.locker.Acquire(ctx, "resource:"+current.ResourceID, uc.lockWait)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: %s", ErrResourceBusy, current.ResourceID)
		}
		return nil, fmt.Errorf("%w: acquire resource lock: %v", ErrInternal, err)
	}
	defer release()

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.repo.LockResource(txCtx, current.ResourceID); err != nil {
			if errors.Is(err, domain.ErrResourceBusy) {
				return fmt.Errorf("%w: %s", ErrResourceBusy, current.ResourceID)
			}
			return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
		}

		res, err := uc.get(txCtx, id)
		if err != nil {
			return err
		}
		if res.ResourceID != current.ResourceID {
			return fmt.Errorf("%w: reservation %s was moved concurrently", ErrResourceBusy, id)
		}
		switch res.Status {
		case domain.StatusConfirmed:
			result = res
			return nil
		case domain.StatusCancelled:
			return fmt.Errorf("%w: %s is cancelled", ErrCannotConfirm, id)
		}

		check, err := uc.availability.CheckSlot(txCtx, availability.CheckRequest{
			ResourceID:           res.ResourceID,
			Date:                 res.Date,
			StartTime:            res.StartTime,
			DurationMinutes:      res.DurationMinutes,
			ExcludeReservationID: res.ID,
		})
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return err
			}
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if !check.Available {
			conflict := &domain.ConflictError{ResourceID: res.ResourceID, Date: res.Date}
			if check.Conflict != nil {
				conflict.ReservationID = check.Conflict.ID
				conflict.Interval = check.Conflict.Interval()
			}
			uc.logger.Warn("ConfirmReservation: %v", conflict)
			return conflict
		}

		res.Status = domain.StatusConfirmed
		res.SyncStatus = domain.SyncUnsynced
		res.UpdatedAt = domain.NextModified(res.UpdatedAt, uc.now())
		if err := uc.repo.Update(txCtx, res); err != nil {
			if errors.Is(err, domain.ErrSlotUnavailable) {
				return &domain.ConflictError{ResourceID: res.ResourceID, Date: res.Date, Interval: res.Interval()}
			}
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmReservation: reservation %s confirmed", id)
	return result, nil
}

func (uc *UseCase) get(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, id)
		}
		uc.logger.Error("ConfirmReservation: failed to get reservation %s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return res, nil
}
