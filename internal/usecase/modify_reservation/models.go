package modify_reservation

import (
	"time"

	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

// Request изменение брони; nil поле = без изменений
type Request struct {
	ReservationID string

	ResourceID      *string
	Date            *time.Time
	StartTime       *types.TimeString
	DurationMinutes *int

	CustomerName  *string
	CustomerPhone *string
	PartySize     *int
	Notes         *string
}

// changesSlot true, если меняется ресурс, дата или интервал
func (r *Request) changesSlot() bool {
	return r.ResourceID != nil || r.Date != nil || r.StartTime != nil || r.DurationMinutes != nil
}
