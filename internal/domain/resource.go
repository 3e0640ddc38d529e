package domain

import (
	"time"

	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

// Resource is one independently schedulable bay
type Resource struct {
	ID         string
	Name       string
	CalendarID string         // external calendar the bay is mirrored to
	Location   *time.Location // business hours are expressed in this zone
	Hours      BusinessHours
}

// DayHours is the opening window for a single day
type DayHours struct {
	Open   types.TimeString
	Close  types.TimeString // "24:00" closes at midnight
	Closed bool
}

// BusinessHours is a default window with optional per-weekday overrides
type BusinessHours struct {
	Default  DayHours
	Weekdays map[time.Weekday]DayHours
}

// For returns the hours that apply to the given calendar date
func (h BusinessHours) For(date time.Time) DayHours {
	if d, ok := h.Weekdays[date.Weekday()]; ok {
		return d
	}
	return h.Default
}

// Window returns the opening interval; ok is false when the bay is closed
func (d DayHours) Window() (Interval, bool) {
	if d.Closed {
		return Interval{}, false
	}
	w := Interval{Start: d.Open.Minutes(), End: d.Close.Minutes()}
	if w.Start < 0 || w.IsEmpty() {
		return Interval{}, false
	}
	return w, true
}

// WindowOn returns the opening interval of the resource for the date
func (r *Resource) WindowOn(date time.Time) (Interval, bool) {
	return r.Hours.For(date).Window()
}
