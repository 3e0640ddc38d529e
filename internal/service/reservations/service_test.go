package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BayBookingService/internal/registry"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-BayBookingService/pkg/logger"
	"github.com/m04kA/SMC-BayBookingService/pkg/ptr"
	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

var testDate = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

type noopMetrics struct{}

func (noopMetrics) RecordReservationOp(string, string) {}

func setup(t *testing.T) (*Service, *memory.ReservationRepository, *lock.KeyedMutex) {
	t.Helper()

	reg, err := registry.New([]domain.Resource{
		{ID: "bay-1", CalendarID: "cal-1", Hours: domain.BusinessHours{Default: domain.DayHours{Open: "10:00", Close: "24:00"}}},
		{ID: "bay-2", CalendarID: "cal-2", Hours: domain.BusinessHours{Default: domain.DayHours{Open: "10:00", Close: "24:00"}}},
	})
	require.NoError(t, err)

	repo := memory.NewReservationRepository()
	locker := lock.NewKeyedMutex()
	now := testDate.Add(9 * time.Hour)
	svc := NewService(repo, reg, memory.NewTxManager(), locker, 50*time.Millisecond, noopMetrics{}, logger.NewNop()).
		WithClock(func() time.Time { return now })
	return svc, repo, locker
}

func put(t *testing.T, repo *memory.ReservationRepository, id, resourceID string, status domain.ReservationStatus) {
	t.Helper()
	_, err := repo.Create(context.Background(), &domain.Reservation{
		ID:              id,
		ResourceID:      resourceID,
		Date:            testDate,
		StartTime:       types.TimeString("12:00"),
		DurationMinutes: 60,
		Status:          status,
		CustomerName:    "Mai",
		SyncStatus:      domain.SyncSynced,
		ExternalEventID: ptr.Ptr("evt-" + id),
		UpdatedAt:       testDate.Add(8 * time.Hour),
	})
	require.NoError(t, err)
}

func TestCancel(t *testing.T) {
	svc, repo, _ := setup(t)
	put(t, repo, "r1", "bay-1", domain.StatusConfirmed)

	got, err := svc.Cancel(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Equal(t, domain.SyncUnsynced, got.SyncStatus)
	require.NotNil(t, got.CancelledAt)
	assert.Equal(t, testDate.Add(9*time.Hour), got.UpdatedAt)
	assert.Equal(t, "evt-r1", *got.ExternalEventID, "external event is removed by the reconciler")
	assert.True(t, got.NeedsSync())

	// Слот освобожден
	free, err := repo.ListByResourceAndDate(context.Background(), "bay-1", testDate, []domain.ReservationStatus{domain.StatusConfirmed})
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestCancel_Idempotent(t *testing.T) {
	svc, repo, _ := setup(t)
	put(t, repo, "r1", "bay-1", domain.StatusConfirmed)
	ctx := context.Background()

	first, err := svc.Cancel(ctx, "r1")
	require.NoError(t, err)

	second, err := svc.Cancel(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt, "second cancel changes nothing")
	assert.Equal(t, domain.StatusCancelled, second.Status)
}

func TestCancel_FromPending(t *testing.T) {
	svc, repo, _ := setup(t)
	put(t, repo, "p1", "bay-1", domain.StatusPending)

	got, err := svc.Cancel(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}

func TestCancel_Errors(t *testing.T) {
	svc, repo, locker := setup(t)
	put(t, repo, "r1", "bay-1", domain.StatusConfirmed)

	_, err := svc.Cancel(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)

	release, err := locker.Acquire(context.Background(), "resource:bay-1", 0)
	require.NoError(t, err)
	defer release()

	_, err = svc.Cancel(context.Background(), "r1")
	assert.ErrorIs(t, err, domain.ErrResourceBusy)
}

func TestList(t *testing.T) {
	svc, repo, _ := setup(t)
	put(t, repo, "a", "bay-1", domain.StatusConfirmed)
	put(t, repo, "b", "bay-1", domain.StatusCancelled)
	put(t, repo, "c", "bay-2", domain.StatusConfirmed)
	ctx := context.Background()

	list, err := svc.List(ctx, &models.ListRequest{ResourceID: ptr.Ptr("bay-1"), Status: ptr.Ptr("CONFIRMED")})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)

	_, err = svc.List(ctx, &models.ListRequest{Status: ptr.Ptr("done")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.List(ctx, &models.ListRequest{ResourceID: ptr.Ptr("bay-9")})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	got, err := svc.GetByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "bay-2", got.ResourceID)
}

func TestFromDomainReservation(t *testing.T) {
	synced := testDate.Add(10 * time.Hour)
	resp := models.FromDomainReservation(&domain.Reservation{
		ID:              "r1",
		ResourceID:      "bay-1",
		Date:            testDate,
		StartTime:       "23:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		SyncStatus:      domain.SyncSynced,
		SyncedAt:        &synced,
	})
	assert.Equal(t, "2026-10-20", resp.Date)
	assert.Equal(t, "24:00", resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2026-10-20T10:00:00Z", *resp.SyncedAt)
	assert.Nil(t, resp.CancelledAt)

	assert.Empty(t, models.FromDomainReservationList(nil).Reservations)
}
