package modify_reservation

import (
	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	modifyReservation "github.com/m04kA/SMC-BayBookingService/internal/usecase/modify_reservation"
)

// ModifyReservationRequest HTTP request model; отсутствующее поле не меняется
type ModifyReservationRequest struct {
	ResourceID      *string `json:"resourceId,omitempty"`
	Date            *string `json:"date,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	CustomerName    *string `json:"customerName,omitempty"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	PartySize       *int    `json:"partySize,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ModifyReservationRequest) ToUseCaseRequest(reservationID string) (*modifyReservation.Request, error) {
	req := &modifyReservation.Request{
		ReservationID:   reservationID,
		ResourceID:      r.ResourceID,
		DurationMinutes: r.DurationMinutes,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		PartySize:       r.PartySize,
		Notes:           r.Notes,
	}

	if r.Date != nil {
		d, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &d
	}
	if r.StartTime != nil {
		t, err := handlers.ParseTime(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &t
	}

	return req, nil
}
