package list_resources

import "github.com/m04kA/SMC-BayBookingService/internal/domain"

type ResourceRegistry interface {
	All() []domain.Resource
}

type Logger interface {
	Info(format string, v ...interface{})
}
