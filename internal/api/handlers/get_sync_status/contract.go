package get_sync_status

import "github.com/m04kA/SMC-BayBookingService/internal/scheduler"

type StatusProvider interface {
	Status() scheduler.Status
}
