package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BayBookingService/internal/registry"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
	"github.com/m04kA/SMC-BayBookingService/pkg/logger"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()

	reg, err := registry.New([]domain.Resource{{
		ID:         "bay-1",
		Name:       "Bay 1",
		CalendarID: "cal-1",
		Hours:      domain.BusinessHours{Default: domain.DayHours{Open: "10:00", Close: "14:00"}},
	}})
	require.NoError(t, err)

	repo := memory.NewReservationRepository()
	_, err = repo.Create(context.Background(), &domain.Reservation{
		ID:              "r1",
		ResourceID:      "bay-1",
		Date:            time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       "11:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		CustomerName:    "Kim",
		SyncStatus:      domain.SyncUnsynced,
	})
	require.NoError(t, err)

	svc := availability.NewService(reg, repo, availability.DefaultLimits(), logger.NewNop())
	return NewHandler(svc, logger.NewNop())
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/resources/{resourceId}/availability", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_FreeSlots(t *testing.T) {
	rec := serve(newHandler(t), "/resources/bay-1/availability?date=2026-10-20&duration=60&step=30")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Open)
	assert.Equal(t, []IntervalResponse{
		{StartTime: "10:00", EndTime: "11:00"},
		{StartTime: "12:00", EndTime: "14:00"},
	}, resp.FreeIntervals)
	assert.Equal(t, []IntervalResponse{
		{StartTime: "10:00", EndTime: "11:00"},
		{StartTime: "12:00", EndTime: "13:00"},
		{StartTime: "12:30", EndTime: "13:30"},
		{StartTime: "13:00", EndTime: "14:00"},
	}, resp.Slots)
}

func TestHandle_Limit(t *testing.T) {
	rec := serve(newHandler(t), "/resources/bay-1/availability?date=2026-10-20&duration=30&step=15&limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Slots, 2)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		target string
		status int
	}{
		{"/resources/bay-1/availability", http.StatusBadRequest},
		{"/resources/bay-1/availability?date=20.10.2026", http.StatusBadRequest},
		{"/resources/bay-1/availability?date=2026-10-20&duration=abc", http.StatusBadRequest},
		{"/resources/bay-1/availability?date=2026-10-20&duration=0", http.StatusBadRequest},
		{"/resources/bay-1/availability?date=2026-10-20&step=-5", http.StatusBadRequest},
		{"/resources/bay-9/availability?date=2026-10-20", http.StatusNotFound},
	}
	h := newHandler(t)
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(h, tt.target).Code)
		})
	}
}
