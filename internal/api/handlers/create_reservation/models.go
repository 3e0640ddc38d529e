package create_reservation

import (
	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-BayBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ResourceID      string  `json:"resourceId"`
	Date            string  `json:"date"`      // "2026-10-20"
	StartTime       string  `json:"startTime"` // "18:00"
	DurationMinutes int     `json:"durationMinutes"`
	Hold            bool    `json:"hold,omitempty"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	PartySize       int     `json:"partySize,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(staffID string) (*createReservation.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	start, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createReservation.Request{
		ResourceID:      r.ResourceID,
		Date:            date,
		StartTime:       start,
		DurationMinutes: r.DurationMinutes,
		Hold:            r.Hold,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		PartySize:       r.PartySize,
		Notes:           r.Notes,
	}
	if staffID != "" {
		req.CreatedBy = &staffID
	}
	return req, nil
}
