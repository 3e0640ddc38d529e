package check_availability

import (
	"context"

	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

type AvailabilityService interface {
	CheckSlot(ctx context.Context, req availability.CheckRequest) (*availability.CheckResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
