package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// ReservationRepository хранилище броней в памяти процесса.
// Используется при database.driver = "memory" и в тестах.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Reservation
}

// NewReservationRepository создает пустое хранилище
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[string]*domain.Reservation)}
}

func (r *ReservationRepository) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[res.ID]; ok {
		return nil, ErrAlreadyExists
	}
	r.items[res.ID] = clone(res)
	return clone(res), nil
}

func (r *ReservationRepository) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return clone(res), nil
}

// LockResource в памяти сериализация обеспечивается блокировкой ресурса в use case
func (r *ReservationRepository) LockResource(_ context.Context, _ string) error {
	return nil
}

func (r *ReservationRepository) ListByResourceAndDate(_ context.Context, resourceID string, date time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	day := domain.DateOnly(date)
	return r.filter(func(res *domain.Reservation) bool {
		return res.ResourceID == resourceID && res.Date.Equal(day) && hasStatus(statuses, res.Status)
	}, 0), nil
}

func (r *ReservationRepository) List(_ context.Context, f domain.ReservationFilter) ([]*domain.Reservation, error) {
	var day time.Time
	if f.Date != nil {
		day = domain.DateOnly(*f.Date)
	}
	return r.filter(func(res *domain.Reservation) bool {
		if f.ResourceID != nil && res.ResourceID != *f.ResourceID {
			return false
		}
		if f.Date != nil && !res.Date.Equal(day) {
			return false
		}
		return hasStatus(f.Statuses, res.Status)
	}, f.Limit), nil
}

// Update перезаписывает бизнес-поля и статус синхронизации
func (r *ReservationRepository) Update(_ context.Context, res *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[res.ID]
	if !ok {
		return ErrReservationNotFound
	}

	updated := clone(current)
	updated.ResourceID = res.ResourceID
	updated.Date = res.Date
	updated.StartTime = res.StartTime
	updated.DurationMinutes = res.DurationMinutes
	updated.Status = res.Status
	updated.CustomerName = res.CustomerName
	updated.CustomerPhone = res.CustomerPhone
	updated.PartySize = res.PartySize
	updated.Notes = res.Notes
	updated.SyncStatus = res.SyncStatus
	updated.CancelledAt = res.CancelledAt
	updated.UpdatedAt = res.UpdatedAt
	r.items[res.ID] = updated
	return nil
}

// ListPendingSync брони ресурса, требующие работы синхронизатора
func (r *ReservationRepository) ListPendingSync(_ context.Context, resourceID string) ([]*domain.Reservation, error) {
	return r.filter(func(res *domain.Reservation) bool {
		return res.ResourceID == resourceID && res.NeedsSync()
	}, 0), nil
}

// RecordSyncResult записывает результат синхронизации.
// Статус меняется только если бронь не изменилась с момента чтения (UpdatedAt == Version);
// внешняя ссылка сохраняется всегда.
func (r *ReservationRepository) RecordSyncResult(_ context.Context, sr domain.SyncResult) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[sr.ReservationID]
	if !ok {
		return false, ErrReservationNotFound
	}

	updated := clone(current)
	if sr.SetRef {
		updated.ExternalEventID = copyPtr(sr.ExternalRef)
		updated.ExternalCalendarID = copyPtr(sr.CalendarID)
	}

	applied := current.UpdatedAt.Equal(sr.Version)
	if applied {
		updated.SyncStatus = sr.Status
		switch sr.Status {
		case domain.SyncSynced:
			at, version := sr.At, sr.Version
			updated.SyncedAt = &at
			updated.SyncedVersion = &version
			updated.LastSyncError = nil
		case domain.SyncSyncFailed:
			updated.LastSyncError = copyPtr(sr.Error)
			updated.SyncAttempts++
		}
	}

	r.items[sr.ReservationID] = updated
	return applied, nil
}

func (r *ReservationRepository) filter(keep func(*domain.Reservation) bool, limit int) []*domain.Reservation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Reservation, 0)
	for _, res := range r.items {
		if keep(res) {
			out = append(out, clone(res))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		si, sj := out[i].StartTime.Minutes(), out[j].StartTime.Minutes()
		if si != sj {
			return si < sj
		}
		return out[i].ID < out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func hasStatus(statuses []domain.ReservationStatus, s domain.ReservationStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

func clone(r *domain.Reservation) *domain.Reservation {
	c := *r
	c.CustomerPhone = copyPtr(r.CustomerPhone)
	c.Notes = copyPtr(r.Notes)
	c.CreatedBy = copyPtr(r.CreatedBy)
	c.ExternalEventID = copyPtr(r.ExternalEventID)
	c.ExternalCalendarID = copyPtr(r.ExternalCalendarID)
	c.SyncedVersion = copyPtr(r.SyncedVersion)
	c.SyncedAt = copyPtr(r.SyncedAt)
	c.LastSyncError = copyPtr(r.LastSyncError)
	c.CancelledAt = copyPtr(r.CancelledAt)
	return &c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
