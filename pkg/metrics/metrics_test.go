package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP(http.MethodGet, "/x", 200, time.Millisecond)
		m.ObserveQuery("select", time.Millisecond, nil)
		m.RecordReservationOp("create", "ok")
		m.RecordTick("cron", "success", time.Second)
		m.RecordSyncItem("bay-1", "upsert", "ok")
		m.SetLastTick("bay-1", time.Now())
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := New("bay-booking-test")

	m.RecordTick("manual", "partial", 2*time.Second)
	m.RecordTick("manual", "partial", time.Second)
	m.RecordSyncItem("bay-2", "delete", "ok")
	m.ObserveQuery("insert", time.Millisecond, errors.New("boom"))

	body := scrape(t, m)
	assert.Contains(t, body, `bay_booking_sync_ticks_total{outcome="partial",service="bay-booking-test",trigger="manual"} 2`)
	assert.Contains(t, body, `bay_booking_sync_items_total{action="delete",resource="bay-2",result="ok",service="bay-booking-test"} 1`)
	assert.Contains(t, body, `bay_booking_db_query_errors_total{operation="insert",service="bay-booking-test"} 1`)
}

func TestMetrics_Handler(t *testing.T) {
	m := New("bay-booking-test")
	m.RecordReservationOp("create", "conflict")

	assert.Contains(t, scrape(t, m), `bay_booking_reservation_operations_total{operation="create",result="conflict",service="bay-booking-test"} 1`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
