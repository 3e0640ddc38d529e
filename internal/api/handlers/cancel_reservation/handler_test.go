package cancel_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-BayBookingService/pkg/logger"
)

type fakeService struct {
	calls int
	err   error
}

func (f *fakeService) Cancel(_ context.Context, id string) (*domain.Reservation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ID:          id,
		ResourceID:  "bay-1",
		Date:        time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		Status:      domain.StatusCancelled,
		SyncStatus:  domain.SyncUnsynced,
		CancelledAt: &at,
	}, nil
}

func serve(h *Handler) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}/cancel", h.Handle).Methods(http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reservations/res-1/cancel", nil))
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
	assert.Contains(t, rec.Body.String(), `"cancelledAt":"2026-10-18T12:00:00Z"`)
	assert.Equal(t, 1, svc.calls)
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(NewHandler(&fakeService{err: reservations.ErrReservationNotFound}, logger.NewNop()))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(NewHandler(&fakeService{err: reservations.ErrResourceBusy}, logger.NewNop()))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	rec = serve(NewHandler(&fakeService{err: reservations.ErrInternal}, logger.NewNop()))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
