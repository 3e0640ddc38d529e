package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// ListRequest фильтр списка броней
type ListRequest struct {
	ResourceID *string    `json:"resourceId,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Status     *string    `json:"status,omitempty"`
	Limit      int        `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		ResourceID: r.ResourceID,
		Date:       r.Date,
		Limit:      r.Limit,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.ReservationStatus{status}
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID              string `json:"id"`
	ResourceID      string `json:"resourceId"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	PartySize     int     `json:"partySize"`
	Notes         *string `json:"notes,omitempty"`
	CreatedBy     *string `json:"createdBy,omitempty"`

	SyncStatus         string  `json:"syncStatus"`
	ExternalEventID    *string `json:"externalEventId,omitempty"`
	ExternalCalendarID *string `json:"externalCalendarId,omitempty"`
	SyncedAt           *string `json:"syncedAt,omitempty"` // ISO 8601 format
	LastSyncError      *string `json:"lastSyncError,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	interval := r.Interval()
	resp := &ReservationResponse{
		ID:                 r.ID,
		ResourceID:         r.ResourceID,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            interval.EndTime().String(),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.Status),
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		PartySize:          r.PartySize,
		Notes:              r.Notes,
		CreatedBy:          r.CreatedBy,
		SyncStatus:         string(r.SyncStatus),
		ExternalEventID:    r.ExternalEventID,
		ExternalCalendarID: r.ExternalCalendarID,
		LastSyncError:      r.LastSyncError,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.SyncedAt != nil {
		s := r.SyncedAt.Format(time.RFC3339)
		resp.SyncedAt = &s
	}
	if r.CancelledAt != nil {
		s := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	switch s := domain.ReservationStatus(strings.ToLower(status)); s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
}
