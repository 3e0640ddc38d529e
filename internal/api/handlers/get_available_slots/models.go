package get_available_slots

import (
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

// IntervalResponse интервал HH:MM-HH:MM
type IntervalResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ResourceID      string             `json:"resourceId"`
	Date            string             `json:"date"`
	Open            bool               `json:"open"`
	BusinessHours   *IntervalResponse  `json:"businessHours,omitempty"`
	DurationMinutes int                `json:"durationMinutes"`
	FreeIntervals   []IntervalResponse `json:"freeIntervals"`
	Slots           []IntervalResponse `json:"slots"`
}

func toInterval(i domain.Interval) IntervalResponse {
	return IntervalResponse{StartTime: i.StartTime().String(), EndTime: i.EndTime().String()}
}

// FromServiceResult материализует ленивую последовательность слотов (не более limit)
func FromServiceResult(res *availability.SlotsResult, duration, limit int) *AvailableSlotsResponse {
	resp := &AvailableSlotsResponse{
		ResourceID:      res.ResourceID,
		Date:            res.Date.Format(domain.DateFormat),
		Open:            res.Open,
		DurationMinutes: duration,
		FreeIntervals:   make([]IntervalResponse, 0, len(res.Free)),
		Slots:           make([]IntervalResponse, 0),
	}
	if res.Open {
		bh := toInterval(res.BusinessHours)
		resp.BusinessHours = &bh
	}
	for _, f := range res.Free {
		resp.FreeIntervals = append(resp.FreeIntervals, toInterval(f))
	}
	for slot := range res.Slots {
		if limit > 0 && len(resp.Slots) >= limit {
			break
		}
		resp.Slots = append(resp.Slots, toInterval(slot))
	}
	return resp
}
