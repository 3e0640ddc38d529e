package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-BayBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-BayBookingService/pkg/logger"
)

type fakeUseCase struct {
	got *createReservation.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*domain.Reservation, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ID:              "res-1",
		ResourceID:      req.ResourceID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          domain.StatusConfirmed,
		CustomerName:    req.CustomerName,
		PartySize:       2,
		CreatedBy:       req.CreatedBy,
		SyncStatus:      domain.SyncUnsynced,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

const validBody = `{"resourceId":"bay-3","date":"2026-10-20","startTime":"18:00","durationMinutes":60,"customerName":"Kim"}`

func do(h *Handler, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := do(h, validBody, map[string]string{HeaderStaffID: "staff-7"})
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "bay-3", uc.got.ResourceID)
	assert.Equal(t, "18:00", uc.got.StartTime.String())
	assert.Equal(t, 60, uc.got.DurationMinutes)
	require.NotNil(t, uc.got.CreatedBy)
	assert.Equal(t, "staff-7", *uc.got.CreatedBy)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "res-1", body["id"])
	assert.Equal(t, "19:00", body["endTime"])
	assert.Equal(t, "confirmed", body["status"])
	assert.Equal(t, "unsynced", body["syncStatus"])
}

func TestHandle_BadRequests(t *testing.T) {
	cases := map[string]string{
		"malformed json": `{"resourceId":`,
		"unknown field":  `{"resourceId":"bay-3","color":"red"}`,
		"empty body":     ``,
		"bad date":       `{"resourceId":"bay-3","date":"20-10-2026","startTime":"18:00","durationMinutes":60,"customerName":"Kim"}`,
		"bad time":       `{"resourceId":"bay-3","date":"2026-10-20","startTime":"6pm","durationMinutes":60,"customerName":"Kim"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := do(NewHandler(uc, logger.NewNop()), body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	conflict := &domain.ConflictError{
		ReservationID: "res-9",
		ResourceID:    "bay-3",
		Date:          time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Interval:      domain.Interval{Start: 17*60 + 30, End: 18*60 + 30},
	}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"resource not found", fmt.Errorf("%w: %q", domain.ErrResourceNotFound, "bay-9"), http.StatusNotFound},
		{"invalid duration", domain.ErrInvalidDuration, http.StatusBadRequest},
		{"outside hours", domain.ErrOutsideBusinessHours, http.StatusBadRequest},
		{"invalid input", fmt.Errorf("%w: customer name is required", createReservation.ErrInvalidInput), http.StatusBadRequest},
		{"conflict", fmt.Errorf("CreateReservation: %w", conflict), http.StatusConflict},
		{"busy", createReservation.ErrResourceBusy, http.StatusServiceUnavailable},
		{"internal", fmt.Errorf("%w: db down", createReservation.ErrInternal), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()), validBody, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_ConflictBody(t *testing.T) {
	conflict := &domain.ConflictError{
		ReservationID: "res-9",
		ResourceID:    "bay-3",
		Date:          time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Interval:      domain.Interval{Start: 17*60 + 30, End: 18*60 + 30},
	}
	rec := do(NewHandler(&fakeUseCase{err: conflict}, logger.NewNop()), validBody, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Conflict)
	assert.Equal(t, handlers.ConflictDetails{
		ReservationID: "res-9",
		ResourceID:    "bay-3",
		Date:          "2026-10-20",
		StartTime:     "17:30",
		EndTime:       "18:30",
	}, *body.Conflict)
}

func TestHandle_BusyRetryAfter(t *testing.T) {
	rec := do(NewHandler(&fakeUseCase{err: domain.ErrResourceBusy}, logger.NewNop()), validBody, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
