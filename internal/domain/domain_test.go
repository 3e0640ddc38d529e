package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Overlaps(t *testing.T) {
	a := Interval{Start: 14 * 60, End: 15 * 60}

	tests := []struct {
		name string
		b    Interval
		want bool
	}{
		{"same", Interval{14 * 60, 15 * 60}, true},
		{"abuts after", Interval{15 * 60, 16 * 60}, false},
		{"abuts before", Interval{13 * 60, 14 * 60}, false},
		{"one minute overlap", Interval{14*60 + 59, 15*60 + 59}, true},
		{"contained", Interval{14*60 + 10, 14*60 + 20}, true},
		{"disjoint", Interval{18 * 60, 19 * 60}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}

func TestInterval_String(t *testing.T) {
	assert.Equal(t, "23:00-24:00", Interval{Start: 23 * 60, End: 24 * 60}.String())
}

func TestBusinessHours_For(t *testing.T) {
	hours := BusinessHours{
		Default: DayHours{Open: "10:00", Close: "24:00"},
		Weekdays: map[time.Weekday]DayHours{
			time.Monday: {Closed: true},
		},
	}

	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	_, open := hours.For(monday).Window()
	assert.False(t, open)

	w, open := hours.For(tuesday).Window()
	assert.True(t, open)
	assert.Equal(t, Interval{Start: 600, End: 1440}, w)
}

func TestReservation_NeedsSync(t *testing.T) {
	modified := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	ref := "evt-1"

	confirmed := &Reservation{Status: StatusConfirmed, SyncStatus: SyncSynced, UpdatedAt: modified, SyncedVersion: &modified}
	assert.False(t, confirmed.NeedsSync())

	later := modified.Add(time.Second)
	stale := &Reservation{Status: StatusConfirmed, SyncStatus: SyncSynced, UpdatedAt: later, SyncedVersion: &modified}
	assert.True(t, stale.NeedsSync())

	cancelled := &Reservation{Status: StatusCancelled, SyncStatus: SyncSynced, ExternalEventID: &ref}
	assert.True(t, cancelled.NeedsSync())

	pending := &Reservation{Status: StatusPending, SyncStatus: SyncUnsynced}
	assert.False(t, pending.NeedsSync())
}

func TestNextModified(t *testing.T) {
	prev := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, prev.Add(time.Microsecond), NextModified(prev, prev))
	assert.Equal(t, prev.Add(time.Microsecond), NextModified(prev, prev.Add(-time.Hour)))
	assert.Equal(t, prev.Add(time.Second), NextModified(prev, prev.Add(time.Second+time.Nanosecond)))
}

func TestConflictError(t *testing.T) {
	err := error(&ConflictError{
		ReservationID: "r-1",
		ResourceID:    "bay-1",
		Date:          time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Interval:      Interval{Start: 840, End: 900},
	})

	assert.True(t, errors.Is(err, ErrSlotUnavailable))
	assert.Contains(t, err.Error(), "14:00-15:00")

	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "r-1", conflict.ReservationID)
}

func TestValidationErrors(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidDuration, ErrValidation)
	assert.ErrorIs(t, ErrResourceNotFound, ErrValidation)
	assert.NotErrorIs(t, ErrSlotUnavailable, ErrValidation)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "ok", ErrorKind(nil))
	assert.Equal(t, "invalid", ErrorKind(ErrOutsideBusinessHours))
	assert.Equal(t, "conflict", ErrorKind(&ConflictError{}))
	assert.Equal(t, "busy", ErrorKind(ErrResourceBusy))
	assert.Equal(t, "not_found", ErrorKind(ErrReservationNotFound))
	assert.Equal(t, "error", ErrorKind(errors.New("db down")))
}
