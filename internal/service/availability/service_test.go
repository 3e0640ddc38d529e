package availability

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BayBookingService/internal/registry"
	"github.com/m04kA/SMC-BayBookingService/pkg/logger"
	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

var testDate = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC) // Tuesday

func newTestService(t *testing.T) (*Service, *memory.ReservationRepository) {
	t.Helper()

	reg, err := registry.New([]domain.Resource{
		{ID: "bay-1", CalendarID: "cal-1", Location: time.UTC, Hours: domain.BusinessHours{
			Default: domain.DayHours{Open: "10:00", Close: "24:00"},
		}},
		{ID: "bay-2", CalendarID: "cal-2", Location: time.UTC, Hours: domain.BusinessHours{
			Default: domain.DayHours{Open: "10:00", Close: "24:00"},
		}},
		{ID: "bay-3", CalendarID: "cal-3", Location: time.UTC, Hours: domain.BusinessHours{
			Default:  domain.DayHours{Open: "09:00", Close: "23:00"},
			Weekdays: map[time.Weekday]domain.DayHours{time.Tuesday: {Closed: true}},
		}},
	})
	require.NoError(t, err)

	repo := memory.NewReservationRepository()
	return NewService(reg, repo, DefaultLimits(), logger.NewNop()), repo
}

func seed(t *testing.T, repo *memory.ReservationRepository, id, resourceID, start string, duration int, status domain.ReservationStatus) {
	t.Helper()
	_, err := repo.Create(context.Background(), &domain.Reservation{
		ID:              id,
		ResourceID:      resourceID,
		Date:            testDate,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          status,
		CustomerName:    "seed",
	})
	require.NoError(t, err)
}

func TestService_CheckSlot_ScenarioA(t *testing.T) {
	svc, repo := newTestService(t)
	seed(t, repo, "A", "bay-1", "14:00", 60, domain.StatusConfirmed)
	ctx := context.Background()

	res, err := svc.CheckSlot(ctx, CheckRequest{ResourceID: "bay-1", Date: testDate, StartTime: "14:00", DurationMinutes: 60})
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.NotNil(t, res.Conflict)
	assert.Equal(t, "A", res.Conflict.ID)
	assert.Equal(t, domain.Interval{Start: 840, End: 900}, res.Conflict.Interval())

	res, err = svc.CheckSlot(ctx, CheckRequest{ResourceID: "bay-1", Date: testDate, StartTime: "15:00", DurationMinutes: 60})
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Nil(t, res.Conflict)
}

func TestService_CheckSlot_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CheckRequest
		want error
	}{
		{"zero duration", CheckRequest{ResourceID: "bay-1", Date: testDate, StartTime: "12:00"}, domain.ErrInvalidDuration},
		{"too long", CheckRequest{ResourceID: "bay-1", Date: testDate, StartTime: "12:00", DurationMinutes: 600}, domain.ErrInvalidDuration},
		{"unknown resource", CheckRequest{ResourceID: "bay-9", Date: testDate, StartTime: "12:00", DurationMinutes: 60}, domain.ErrResourceNotFound},
		{"crosses closing", CheckRequest{ResourceID: "bay-1", Date: testDate, StartTime: "23:30", DurationMinutes: 60}, domain.ErrOutsideBusinessHours},
		{"before opening", CheckRequest{ResourceID: "bay-1", Date: testDate, StartTime: "09:30", DurationMinutes: 60}, domain.ErrOutsideBusinessHours},
		{"closed day", CheckRequest{ResourceID: "bay-3", Date: testDate, StartTime: "12:00", DurationMinutes: 60}, domain.ErrOutsideBusinessHours},
		{"bad start", CheckRequest{ResourceID: "bay-1", Date: testDate, StartTime: "noon", DurationMinutes: 60}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CheckSlot(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestService_CheckSlot_EndsAtMidnight(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.CheckSlot(context.Background(), CheckRequest{ResourceID: "bay-1", Date: testDate, StartTime: "23:00", DurationMinutes: 60})
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestService_FreeSlots(t *testing.T) {
	svc, repo := newTestService(t)
	seed(t, repo, "A", "bay-1", "11:00", 60, domain.StatusConfirmed)
	seed(t, repo, "B", "bay-1", "12:00", 30, domain.StatusConfirmed)
	seed(t, repo, "P", "bay-1", "15:00", 60, domain.StatusPending)
	seed(t, repo, "X", "bay-1", "16:00", 60, domain.StatusCancelled)

	res, err := svc.FreeSlots(context.Background(), SlotsRequest{ResourceID: "bay-1", Date: testDate, DurationMinutes: 60})
	require.NoError(t, err)
	assert.True(t, res.Open)
	assert.Equal(t, domain.Interval{Start: 600, End: 1440}, res.BusinessHours)
	assert.Equal(t, []domain.Interval{{Start: 600, End: 660}, {Start: 750, End: 1440}}, res.Free)

	slots := slices.Collect(res.Slots)
	require.NotEmpty(t, slots)
	assert.Equal(t, domain.Interval{Start: 600, End: 660}, slots[0])
	assert.Equal(t, domain.Interval{Start: 750, End: 810}, slots[1])
	assert.Equal(t, domain.Interval{Start: 1380, End: 1440}, slots[len(slots)-1])
}

func TestService_FreeSlots_ClosedDay(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.FreeSlots(context.Background(), SlotsRequest{ResourceID: "bay-3", Date: testDate, DurationMinutes: 60})
	require.NoError(t, err)
	assert.False(t, res.Open)
	assert.Empty(t, res.Free)
	assert.Empty(t, slices.Collect(res.Slots))
}

// Every reported slot passes CheckSlot; every interior conflicting start fails it.
func TestService_FreeSlotsAgreeWithCheckSlot(t *testing.T) {
	svc, repo := newTestService(t)
	seed(t, repo, "A", "bay-2", "10:45", 90, domain.StatusConfirmed)
	seed(t, repo, "B", "bay-2", "17:10", 35, domain.StatusConfirmed)
	ctx := context.Background()

	res, err := svc.FreeSlots(ctx, SlotsRequest{ResourceID: "bay-2", Date: testDate, DurationMinutes: 45, StepMinutes: 5})
	require.NoError(t, err)

	reported := make(map[int]bool)
	for slot := range res.Slots {
		reported[slot.Start] = true
	}

	for start := 600; start+45 <= 1440; start += 5 {
		ts, err := types.FromMinutes(start)
		require.NoError(t, err)
		check, err := svc.CheckSlot(ctx, CheckRequest{ResourceID: "bay-2", Date: testDate, StartTime: ts, DurationMinutes: 45})
		require.NoError(t, err)
		assert.Equal(t, reported[start], check.Available, "start %s", ts)
	}
}

func TestService_AvailableResources(t *testing.T) {
	svc, repo := newTestService(t)
	seed(t, repo, "A", "bay-1", "14:00", 60, domain.StatusConfirmed)
	ctx := context.Background()

	got, err := svc.AvailableResources(ctx, AnyRequest{Date: testDate, StartTime: "14:30", DurationMinutes: 30})
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	// bay-3 закрыт во вторник
	assert.Equal(t, []string{"bay-2"}, ids)

	got, err = svc.AvailableResources(ctx, AnyRequest{ResourceIDs: []string{"bay-1"}, Date: testDate, StartTime: "15:00", DurationMinutes: 30})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bay-1", got[0].ID)

	_, err = svc.AvailableResources(ctx, AnyRequest{ResourceIDs: []string{"nope"}, Date: testDate, StartTime: "15:00", DurationMinutes: 30})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}
