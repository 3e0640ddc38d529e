package modify_reservation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

// UseCase изменение времени, ресурса, длительности или данных клиента
type UseCase struct {
	repo         ReservationRepository
	availability AvailabilityChecker
	txManager    TransactionManager
	locker       lock.Locker
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
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute изменяет бронь. Новый интервал проверяется как новый слот без учета самой брони.
// При переносе между ресурсами блокируются оба ресурса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (result *domain.Reservation, err error) {
	defer func() { uc.metrics.RecordReservationOp("modify", domain.ErrorKind(err)) }()

	uc.logger.Info("ModifyReservation: id=%s", req.ReservationID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ModifyReservation: validation failed: %v", err)
		return nil, err
	}
	if req.DurationMinutes != nil {
		if err := uc.availability.ValidateDuration(*req.DurationMinutes); err != nil {
			uc.logger.Warn("ModifyReservation: validation failed: %v", err)
			return nil, err
		}
	}

	// 1. Предварительное чтение: нужен текущий ресурс для блокировки
	current, err := uc.load(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	target := current.ResourceID
	if req.ResourceID != nil {
		target = *req.ResourceID
	}
	resources := []string{current.ResourceID, target}

	// 2. Блокировки ресурсов (старого и нового) в фиксированном порядке
	keys := make([]string, 0, len(resources))
	for _, id := range resources {
		keys = append(keys, "resource:"+id)
	}
	release, err := lock.AcquireAll(ctx, uc.locker, keys, uc.lockWait)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			uc.logger.Warn("ModifyReservation: resources %v are busy", resources)
			return nil, fmt.Errorf("%w: %s", ErrResourceBusy, strings.Join(resources, ","))
		}
		return nil, fmt.Errorf("%w: acquire resource lock: %v", ErrInternal, err)
	}
	defer release()

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, id := range sortedUnique(resources) {
			if err := uc.repo.LockResource(txCtx, id); err != nil {
				if errors.Is(err, domain.ErrResourceBusy) {
					return fmt.Errorf("%w: %s", ErrResourceBusy, id)
				}
				return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
			}
		}

		res, err := uc.load(txCtx, req.ReservationID)
		if err != nil {
			return err
		}
		if res.ResourceID != current.ResourceID {
			uc.logger.Warn("ModifyReservation: reservation %s moved concurrently to %s", res.ID, res.ResourceID)
			return fmt.Errorf("%w: reservation %s was moved concurrently", ErrResourceBusy, res.ID)
		}

		slotChanged := applySlot(res, req)
		applyMetadata(res, req)

		if slotChanged {
			check, err := uc.availability.CheckSlot(txCtx, availability.CheckRequest{
				ResourceID:           res.ResourceID,
				Date:                 res.Date,
				StartTime:            res.StartTime,
				DurationMinutes:      res.DurationMinutes,
				ExcludeReservationID: res.ID,
			})
			if err != nil {
				if errors.Is(err, domain.ErrValidation) {
					uc.logger.Warn("ModifyReservation: slot rejected: %v", err)
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
				uc.logger.Warn("ModifyReservation: %v", conflict)
				return conflict
			}
		}

		res.SyncStatus = domain.SyncUnsynced
		res.UpdatedAt = domain.NextModified(res.UpdatedAt, uc.timeProvider.Now())

		if err := uc.repo.Update(txCtx, res); err != nil {
			if errors.Is(err, domain.ErrSlotUnavailable) {
				return &domain.ConflictError{ResourceID: res.ResourceID, Date: res.Date, Interval: res.Interval()}
			}
			uc.logger.Error("ModifyReservation: failed to update reservation %s: %v", res.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ModifyReservation: reservation %s is now %s %s %s",
		result.ID, result.ResourceID, result.Date.Format(domain.DateFormat), result.Interval())
	return result, nil
}

// load читает бронь; отмененная бронь для изменения не существует
func (uc *UseCase) load(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			uc.logger.Warn("ModifyReservation: reservation %s not found", id)
			return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, id)
		}
		uc.logger.Error("ModifyReservation: failed to get reservation %s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	if !res.CanBeModified() {
		uc.logger.Warn("ModifyReservation: reservation %s is %s", id, res.Status)
		return nil, fmt.Errorf("%w: %s is %s", ErrReservationNotFound, id, res.Status)
	}
	return res, nil
}

func applySlot(res *domain.Reservation, req *Request) bool {
	changed := false
	if req.ResourceID != nil && *req.ResourceID != res.ResourceID {
		res.ResourceID = *req.ResourceID
		changed = true
	}
	if req.Date != nil {
		if d := domain.DateOnly(*req.Date); !d.Equal(res.Date) {
			res.Date = d
			changed = true
		}
	}
	if req.StartTime != nil && req.StartTime.Minutes() != res.StartTime.Minutes() {
		res.StartTime = *req.StartTime
		changed = true
	}
	if req.DurationMinutes != nil && *req.DurationMinutes != res.DurationMinutes {
		res.DurationMinutes = *req.DurationMinutes
		changed = true
	}
	return changed
}

func applyMetadata(res *domain.Reservation, req *Request) {
	if req.CustomerName != nil {
		res.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerPhone != nil {
		res.CustomerPhone = req.CustomerPhone
	}
	if req.PartySize != nil {
		res.PartySize = *req.PartySize
	}
	if req.Notes != nil {
		res.Notes = req.Notes
	}
}

func sortedUnique(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
