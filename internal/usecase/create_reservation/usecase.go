package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

// UseCase use case для создания брони
type UseCase struct {
	repo         ReservationRepository
	availability AvailabilityChecker
	txManager    TransactionManager
	locker       ResourceLocker
	lockWait     time.Duration
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo ReservationRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	locker ResourceLocker,
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
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет слот и создает бронь атомарно для ресурса:
// блокировка ресурса -> транзакция (блокировка в БД, проверка, вставка)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (result *domain.Reservation, err error) {
	defer func() { uc.metrics.RecordReservationOp("create", domain.ErrorKind(err)) }()

	uc.logger.Info("CreateReservation: resource=%s, date=%s, start=%s, duration=%d, hold=%t",
		req.ResourceID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes, req.Hold)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}
	if err := uc.availability.ValidateDuration(req.DurationMinutes); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Блокировка ресурса с ограниченным ожиданием
	release, err := uc.locker.Acquire(ctx, lockKey(req.ResourceID), uc.lockWait)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			uc.logger.Warn("CreateReservation: resource %s is busy", req.ResourceID)
			return nil, fmt.Errorf("%w: %s", ErrResourceBusy, req.ResourceID)
		}
		return nil, fmt.Errorf("%w: acquire resource lock: %v", ErrInternal, err)
	}
	defer release()

	date := domain.DateOnly(req.Date)

	// 3. Проверка и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.repo.LockResource(txCtx, req.ResourceID); err != nil {
			if errors.Is(err, domain.ErrResourceBusy) {
				uc.logger.Warn("CreateReservation: database lock timeout for %s", req.ResourceID)
				return fmt.Errorf("%w: %s", ErrResourceBusy, req.ResourceID)
			}
			uc.logger.Error("CreateReservation: failed to lock resource %s: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
		}

		check, err := uc.availability.CheckSlot(txCtx, availability.CheckRequest{
			ResourceID:      req.ResourceID,
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
		})
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				uc.logger.Warn("CreateReservation: slot rejected: %v", err)
				return err
			}
			uc.logger.Error("CreateReservation: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}

		if !check.Available {
			conflict := &domain.ConflictError{ResourceID: req.ResourceID, Date: date}
			if check.Conflict != nil {
				conflict.ReservationID = check.Conflict.ID
				conflict.Interval = check.Conflict.Interval()
			}
			uc.logger.Warn("CreateReservation: %v", conflict)
			return conflict
		}

		now := domain.NextModified(time.Time{}, uc.timeProvider.Now())
		status := domain.StatusConfirmed
		if req.Hold {
			status = domain.StatusPending
		}
		partySize := req.PartySize
		if partySize == 0 {
			partySize = 1
		}

		created, err := uc.repo.Create(txCtx, &domain.Reservation{
			ID:              uuid.NewString(),
			ResourceID:      req.ResourceID,
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Status:          status,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerPhone:   req.CustomerPhone,
			PartySize:       partySize,
			Notes:           req.Notes,
			CreatedBy:       req.CreatedBy,
			SyncStatus:      domain.SyncUnsynced,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			// Ограничение в БД сработало раньше проверки (другой процесс без общей блокировки)
			if errors.Is(err, domain.ErrSlotUnavailable) {
				uc.logger.Warn("CreateReservation: overlap rejected by storage: %v", err)
				return &domain.ConflictError{ResourceID: req.ResourceID, Date: date, Interval: domain.NewInterval(req.StartTime, req.DurationMinutes)}
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s (%s %s %s, %s)",
		result.ID, result.ResourceID, result.Date.Format(domain.DateFormat), result.Interval(), result.Status)
	return result, nil
}

func lockKey(resourceID string) string {
	return "resource:" + resourceID
}
