package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

// Request запрос на создание брони
type Request struct {
	ResourceID      string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	// Hold создает бронь в статусе PENDING: слот не занимается до подтверждения
	Hold bool

	CustomerName  string
	CustomerPhone *string
	PartySize     int
	Notes         *string
	CreatedBy     *string
}
