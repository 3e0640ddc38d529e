package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrValidation base error for malformed input
	ErrValidation = errors.New("validation error")

	// ErrInvalidDuration zero, negative or out of bounds duration
	ErrInvalidDuration = fmt.Errorf("%w: invalid duration", ErrValidation)

	// ErrOutsideBusinessHours requested interval crosses the business-hours window
	ErrOutsideBusinessHours = fmt.Errorf("%w: outside business hours", ErrValidation)

	// ErrResourceNotFound unknown resource id
	ErrResourceNotFound = fmt.Errorf("%w: resource not found", ErrValidation)

	// ErrReservationNotFound unknown (or cancelled, for Modify) reservation id
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrSlotUnavailable the slot conflicts with a confirmed reservation
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrResourceBusy the per-resource lock could not be acquired in time; retryable
	ErrResourceBusy = errors.New("resource busy")
)

// ConflictError names the confirmed reservation a request collided with
type ConflictError struct {
	ReservationID string
	ResourceID    string
	Date          time.Time
	Interval      Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s on %s conflicts with reservation %s (%s)",
		ErrSlotUnavailable, e.ResourceID, e.Date.Format(DateFormat), e.ReservationID, e.Interval)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotUnavailable
}

// ErrInvalidTransition the reservation status does not allow the operation
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrSyncBatchNotFound unknown reconciliation tick id
var ErrSyncBatchNotFound = errors.New("sync batch not found")

// ErrorKind classifies lifecycle errors for metrics and logs
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrReservationNotFound):
		return "not_found"
	case errors.Is(err, ErrSlotUnavailable):
		return "conflict"
	case errors.Is(err, ErrResourceBusy):
		return "busy"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	default:
		return "error"
	}
}
