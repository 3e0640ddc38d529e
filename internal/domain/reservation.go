package domain

import (
	"time"

	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// SyncStatus tracks whether the external calendar mirrors the current state
type SyncStatus string

const (
	SyncUnsynced   SyncStatus = "unsynced"
	SyncSynced     SyncStatus = "synced"
	SyncSyncFailed SyncStatus = "sync_failed"
)

// Reservation is a claim on one resource for a contiguous interval of a date
type Reservation struct {
	ID              string
	ResourceID      string
	Date            time.Time // calendar date, midnight UTC
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	CustomerName  string
	CustomerPhone *string
	PartySize     int
	Notes         *string
	CreatedBy     *string

	// Owned by the reconciler
	SyncStatus         SyncStatus
	ExternalEventID    *string
	ExternalCalendarID *string    // calendar the external event lives in
	SyncedVersion      *time.Time // UpdatedAt value that was last pushed
	SyncedAt           *time.Time
	LastSyncError      *string
	SyncAttempts       int

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time // last-modified, strictly increasing on every lifecycle change
}

// Interval returns [start, start+duration)
func (r *Reservation) Interval() Interval {
	return NewInterval(r.StartTime, r.DurationMinutes)
}

// IsActive returns true if the reservation occupies its slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeModified returns true for non-terminal reservations
func (r *Reservation) CanBeModified() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// HasExternalEvent returns true once the reconciler stored an external reference
func (r *Reservation) HasExternalEvent() bool {
	return r.ExternalEventID != nil && *r.ExternalEventID != ""
}

// NeedsSync reports whether the reconciler has work for this reservation
func (r *Reservation) NeedsSync() bool {
	switch r.Status {
	case StatusConfirmed:
		return r.SyncStatus != SyncSynced || r.SyncedVersion == nil || !r.SyncedVersion.Equal(r.UpdatedAt)
	case StatusCancelled:
		return r.HasExternalEvent() || r.SyncStatus != SyncSynced
	default:
		return false
	}
}

// NextModified returns a last-modified value strictly after prev
func NextModified(prev, now time.Time) time.Time {
	now = now.Truncate(time.Microsecond)
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}

// DateOnly normalizes t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReservationFilter filter for listing reservations
type ReservationFilter struct {
	ResourceID *string
	Date       *time.Time
	Statuses   []ReservationStatus // empty = all statuses
	Limit      int
}

// SyncResult is what the reconciler writes back after one external call
type SyncResult struct {
	ReservationID string
	Version       time.Time // UpdatedAt observed when the item was read
	Status        SyncStatus
	ExternalRef   *string // stored when SetRef is true
	CalendarID    *string
	SetRef        bool
	Error         *string
	At            time.Time
}
