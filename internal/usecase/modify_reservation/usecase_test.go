package modify_reservation_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BayBookingService/internal/registry"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-BayBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-BayBookingService/internal/usecase/modify_reservation"
	"github.com/m04kA/SMC-BayBookingService/pkg/logger"
	"github.com/m04kA/SMC-BayBookingService/pkg/ptr"
	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

var testDate = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

type noopMetrics struct{}

func (noopMetrics) RecordReservationOp(string, string) {}

type fixture struct {
	create *create_reservation.UseCase
	modify *modify_reservation.UseCase
	svc    *reservations.Service
	repo   *memory.ReservationRepository
	locker *lock.KeyedMutex
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	day := domain.BusinessHours{Default: domain.DayHours{Open: "10:00", Close: "24:00"}}
	reg, err := registry.New([]domain.Resource{
		{ID: "bay-1", CalendarID: "cal-1", Hours: day},
		{ID: "bay-2", CalendarID: "cal-2", Hours: day},
		{ID: "bay-3", CalendarID: "cal-3", Hours: domain.BusinessHours{Default: domain.DayHours{Open: "09:00", Close: "23:00"}}},
	})
	require.NoError(t, err)

	log := logger.NewNop()
	repo := memory.NewReservationRepository()
	locker := lock.NewKeyedMutex()
	tx := memory.NewTxManager()
	avail := availability.NewService(reg, repo, availability.DefaultLimits(), log)
	wait := 100 * time.Millisecond

	return &fixture{
		create: create_reservation.NewUseCase(repo, avail, tx, locker, wait, noopMetrics{}, log),
		modify: modify_reservation.NewUseCase(repo, avail, tx, locker, wait, noopMetrics{}, log),
		svc:    reservations.NewService(repo, reg, tx, locker, wait, noopMetrics{}, log),
		repo:   repo,
		locker: locker,
	}
}

func (f *fixture) book(t *testing.T, resourceID, start string, duration int) *domain.Reservation {
	t.Helper()
	res, err := f.create.Execute(context.Background(), &create_reservation.Request{
		ResourceID:      resourceID,
		Date:            testDate,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		CustomerName:    "Nok",
		PartySize:       2,
	})
	require.NoError(t, err)
	return res
}

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func TestModify_MovesWithinResource(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "bay-1", "12:00", 60)

	// Пересекается только с собственным интервалом
	got, err := f.modify.Execute(context.Background(), &modify_reservation.Request{
		ReservationID:   r.ID,
		StartTime:       ts("12:30"),
		DurationMinutes: ptr.Ptr(90),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Interval{Start: 750, End: 840}, got.Interval())
	assert.Equal(t, domain.SyncUnsynced, got.SyncStatus)
	assert.True(t, got.UpdatedAt.After(r.UpdatedAt), "last-modified is bumped")
}

func TestModify_ResetsSyncStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, "bay-1", "12:00", 60)

	applied, err := f.repo.RecordSyncResult(ctx, domain.SyncResult{
		ReservationID: r.ID, Version: r.UpdatedAt, Status: domain.SyncSynced,
		ExternalRef: ptr.Ptr("evt"), SetRef: true, At: r.UpdatedAt,
	})
	require.NoError(t, err)
	require.True(t, applied)

	got, err := f.modify.Execute(ctx, &modify_reservation.Request{ReservationID: r.ID, Notes: ptr.Ptr("vip")})
	require.NoError(t, err)
	assert.Equal(t, domain.SyncUnsynced, got.SyncStatus)
	assert.Equal(t, "vip", *got.Notes)
	assert.Equal(t, "evt", *got.ExternalEventID)
	assert.True(t, got.NeedsSync())
}

func TestModify_Conflict(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "bay-1", "12:00", 60)
	b := f.book(t, "bay-1", "14:00", 60)

	_, err := f.modify.Execute(context.Background(), &modify_reservation.Request{ReservationID: b.ID, StartTime: ts("12:30")})
	require.ErrorIs(t, err, domain.ErrSlotUnavailable)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, a.ID, conflict.ReservationID)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), stored.StartTime, "rejected change leaves the reservation intact")
}

func TestModify_MovesAcrossResources(t *testing.T) {
	f := newFixture(t)
	f.book(t, "bay-2", "12:00", 60)
	r := f.book(t, "bay-1", "12:00", 60)

	_, err := f.modify.Execute(context.Background(), &modify_reservation.Request{ReservationID: r.ID, ResourceID: ptr.Ptr("bay-2")})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	got, err := f.modify.Execute(context.Background(), &modify_reservation.Request{ReservationID: r.ID, ResourceID: ptr.Ptr("bay-3")})
	require.NoError(t, err)
	assert.Equal(t, "bay-3", got.ResourceID)

	// Старый слот освобожден
	f.book(t, "bay-1", "12:00", 60)
}

func TestModify_CancelledIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, "bay-1", "12:00", 60)

	_, err := f.svc.Cancel(ctx, r.ID)
	require.NoError(t, err)

	_, err = f.modify.Execute(ctx, &modify_reservation.Request{ReservationID: r.ID, StartTime: ts("13:00")})
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)

	_, err = f.modify.Execute(ctx, &modify_reservation.Request{ReservationID: "missing", StartTime: ts("13:00")})
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestModify_Validation(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "bay-1", "12:00", 60)
	ctx := context.Background()

	_, err := f.modify.Execute(ctx, &modify_reservation.Request{ReservationID: r.ID, DurationMinutes: ptr.Ptr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	_, err = f.modify.Execute(ctx, &modify_reservation.Request{ReservationID: r.ID, StartTime: ts("23:30")})
	assert.ErrorIs(t, err, domain.ErrOutsideBusinessHours)

	_, err = f.modify.Execute(ctx, &modify_reservation.Request{ReservationID: r.ID, ResourceID: ptr.Ptr("bay-9")})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	_, err = f.modify.Execute(ctx, &modify_reservation.Request{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestModify_ResourceBusy(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "bay-1", "12:00", 60)

	release, err := f.locker.Acquire(context.Background(), "resource:bay-2", 0)
	require.NoError(t, err)
	defer release()

	_, err = f.modify.Execute(context.Background(), &modify_reservation.Request{ReservationID: r.ID, ResourceID: ptr.Ptr("bay-2")})
	assert.ErrorIs(t, err, domain.ErrResourceBusy)
}

// Случайные последовательности Create/Modify/Cancel не нарушают непересечение
func TestLifecycle_NonOverlapProperty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	resources := []string{"bay-1", "bay-2", "bay-3"}

	var ids []string
	for step := 0; step < 400; step++ {
		start, _ := types.FromMinutes(540 + 15*rng.Intn(50))
		duration := 15 * (1 + rng.Intn(8))
		resourceID := resources[rng.Intn(len(resources))]

		switch op := rng.Intn(10); {
		case op < 5 || len(ids) == 0:
			res, err := f.create.Execute(ctx, &create_reservation.Request{
				ResourceID: resourceID, Date: testDate, StartTime: start, DurationMinutes: duration, CustomerName: "p",
			})
			if err == nil {
				ids = append(ids, res.ID)
			} else {
				assertExpected(t, err)
			}
		case op < 8:
			_, err := f.modify.Execute(ctx, &modify_reservation.Request{
				ReservationID: ids[rng.Intn(len(ids))], ResourceID: &resourceID, StartTime: &start, DurationMinutes: &duration,
			})
			if err != nil {
				assertExpected(t, err)
			}
		default:
			_, err := f.svc.Cancel(ctx, ids[rng.Intn(len(ids))])
			require.NoError(t, err)
		}

		assertNoOverlap(t, f.repo, resources)
	}
}

func assertExpected(t *testing.T, err error) {
	t.Helper()
	switch domain.ErrorKind(err) {
	case "conflict", "invalid", "not_found":
	default:
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertNoOverlap(t *testing.T, repo *memory.ReservationRepository, resources []string) {
	t.Helper()
	for _, id := range resources {
		list, err := repo.ListByResourceAndDate(context.Background(), id, testDate, []domain.ReservationStatus{domain.StatusConfirmed})
		require.NoError(t, err)
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				require.False(t, list[i].Interval().Overlaps(list[j].Interval()),
					"%s: %s %s overlaps %s %s", id, list[i].ID, list[i].Interval(), list[j].ID, list[j].Interval())
			}
		}
	}
}
