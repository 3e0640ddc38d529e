package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var confirmedOnly = []domain.ReservationStatus{domain.StatusConfirmed}

// Service движок доступности поверх хранилища броней.
// Внутри транзакции (txCtx) читает через неё.
type Service struct {
	registry ResourceRegistry
	repo     ReservationReader
	limits   Limits
	logger   Logger
}

// NewService создает сервис доступности
func NewService(registry ResourceRegistry, repo ReservationReader, limits Limits, logger Logger) *Service {
	return &Service{
		registry: registry,
		repo:     repo,
		limits:   limits,
		logger:   logger,
	}
}

// ValidateDuration проверяет длительность брони
func (s *Service) ValidateDuration(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", domain.ErrInvalidDuration, minutes)
	}
	if minutes < s.limits.MinDurationMinutes || minutes > s.limits.MaxDurationMinutes {
		return fmt.Errorf("%w: duration %d outside [%d, %d]",
			domain.ErrInvalidDuration, minutes, s.limits.MinDurationMinutes, s.limits.MaxDurationMinutes)
	}
	return nil
}

// CheckSlot AVAILABLE или CONFLICT с пересекающейся бронью
func (s *Service) CheckSlot(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	if err := s.ValidateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}
	if !req.StartTime.IsValid() {
		return nil, fmt.Errorf("%w: invalid start time %q", domain.ErrValidation, req.StartTime)
	}

	resource, err := s.registry.Get(req.ResourceID)
	if err != nil {
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	proposed := domain.NewInterval(req.StartTime, req.DurationMinutes)

	window, open := resource.WindowOn(date)
	if !open {
		return nil, fmt.Errorf("%w: %s is closed on %s", domain.ErrOutsideBusinessHours, resource.ID, date.Format(domain.DateFormat))
	}

	reservations, err := s.repo.ListByResourceAndDate(ctx, resource.ID, date, confirmedOnly)
	if err != nil {
		s.logger.Error("CheckSlot: failed to load reservations for %s on %s: %v", resource.ID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: CheckSlot - load reservations: %v", ErrInternal, err)
	}

	res, err := CheckSlot(window, reservations, proposed, req.ExcludeReservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not within %s", err, proposed, window)
	}

	return &CheckResult{
		ResourceID: resource.ID,
		Date:       date,
		Interval:   proposed,
		Available:  res.Available,
		Conflict:   res.Conflict,
	}, nil
}

// FreeSlots свободные интервалы ресурса на дату и ленивая последовательность слотов
func (s *Service) FreeSlots(ctx context.Context, req SlotsRequest) (*SlotsResult, error) {
	if err := s.ValidateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}
	step := req.StepMinutes
	if step == 0 {
		step = s.limits.SlotStepMinutes
	}
	if step < 0 {
		return nil, fmt.Errorf("%w: step must be positive", domain.ErrValidation)
	}

	resource, err := s.registry.Get(req.ResourceID)
	if err != nil {
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	result := &SlotsResult{ResourceID: resource.ID, Date: date}

	window, open := resource.WindowOn(date)
	if !open {
		result.Slots = Slots(nil, req.DurationMinutes, step)
		return result, nil
	}

	reservations, err := s.repo.ListByResourceAndDate(ctx, resource.ID, date, confirmedOnly)
	if err != nil {
		s.logger.Error("FreeSlots: failed to load reservations for %s on %s: %v", resource.ID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: FreeSlots - load reservations: %v", ErrInternal, err)
	}

	busy := make([]domain.Interval, 0, len(reservations))
	for _, r := range reservations {
		if r.IsActive() {
			busy = append(busy, r.Interval())
		}
	}

	result.Open = true
	result.BusinessHours = window
	result.Free = FreeIntervals(window, busy)
	result.Slots = Slots(result.Free, req.DurationMinutes, step)
	return result, nil
}

// AvailableResources подмножество ресурсов, где слот свободен
func (s *Service) AvailableResources(ctx context.Context, req AnyRequest) ([]domain.Resource, error) {
	if err := s.ValidateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}

	candidates := make([]domain.Resource, 0, len(req.ResourceIDs))
	if len(req.ResourceIDs) == 0 {
		candidates = s.registry.All()
	} else {
		for _, id := range req.ResourceIDs {
			res, err := s.registry.Get(id)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, *res)
		}
	}

	available := make([]domain.Resource, 0, len(candidates))
	for _, res := range candidates {
		check, err := s.CheckSlot(ctx, CheckRequest{
			ResourceID:      res.ID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
		})
		if err != nil {
			// Вне часов работы конкретного бокса - он просто не подходит
			if errors.Is(err, domain.ErrOutsideBusinessHours) {
				continue
			}
			return nil, err
		}
		if check.Available {
			available = append(available, res)
		}
	}

	s.logger.Info("AvailableResources: %d/%d bays free on %s at %s for %d min",
		len(available), len(candidates), domain.DateOnly(req.Date).Format(domain.DateFormat), req.StartTime, req.DurationMinutes)
	return available, nil
}
