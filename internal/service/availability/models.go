package availability

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

// Limits ограничения длительности брони и шаг сетки слотов
type Limits struct {
	MinDurationMinutes int
	MaxDurationMinutes int
	SlotStepMinutes    int
}

// DefaultLimits значения по умолчанию
func DefaultLimits() Limits {
	return Limits{
		MinDurationMinutes: domain.DefaultMinDurationMinutes,
		MaxDurationMinutes: domain.DefaultMaxDurationMinutes,
		SlotStepMinutes:    domain.DefaultSlotStepMinutes,
	}
}

// CheckRequest проверка одного слота
type CheckRequest struct {
	ResourceID           string
	Date                 time.Time
	StartTime            types.TimeString
	DurationMinutes      int
	ExcludeReservationID string
}

// CheckResult ответ проверки слота
type CheckResult struct {
	ResourceID string
	Date       time.Time
	Interval   domain.Interval
	Available  bool
	Conflict   *domain.Reservation
}

// SlotsRequest запрос свободных слотов
type SlotsRequest struct {
	ResourceID      string
	Date            time.Time
	DurationMinutes int
	StepMinutes     int // 0 = шаг из конфигурации
}

// SlotsResult свободные интервалы и ленивая последовательность слотов
type SlotsResult struct {
	ResourceID    string
	Date          time.Time
	BusinessHours domain.Interval
	Open          bool
	Free          []domain.Interval
	Slots         iter.Seq[domain.Interval]
}

// AnyRequest запрос "любой свободный бокс"
type AnyRequest struct {
	ResourceIDs     []string // пусто = все ресурсы
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}
