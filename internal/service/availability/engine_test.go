package availability

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

func iv(start, end int) domain.Interval {
	return domain.Interval{Start: start, End: end}
}

func confirmed(id, start string, duration int) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		ResourceID:      "bay-1",
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []domain.Interval
		want []domain.Interval
	}{
		{"empty", nil, nil},
		{"disjoint unsorted", []domain.Interval{iv(300, 360), iv(60, 120)}, []domain.Interval{iv(60, 120), iv(300, 360)}},
		{"overlapping", []domain.Interval{iv(60, 120), iv(90, 180)}, []domain.Interval{iv(60, 180)}},
		{"adjacent", []domain.Interval{iv(60, 120), iv(120, 180)}, []domain.Interval{iv(60, 180)}},
		{"nested", []domain.Interval{iv(60, 300), iv(120, 180)}, []domain.Interval{iv(60, 300)}},
		{"drops empty", []domain.Interval{iv(60, 60), iv(100, 110)}, []domain.Interval{iv(100, 110)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFreeIntervals(t *testing.T) {
	window := iv(600, 1440)

	assert.Equal(t, []domain.Interval{window}, FreeIntervals(window, nil))
	assert.Equal(t,
		[]domain.Interval{iv(600, 840), iv(900, 1440)},
		FreeIntervals(window, []domain.Interval{iv(840, 900)}))
	assert.Equal(t,
		[]domain.Interval{iv(660, 1380)},
		FreeIntervals(window, []domain.Interval{iv(540, 660), iv(1380, 1500)}),
		"busy intervals are clipped to the window")
	assert.Empty(t, FreeIntervals(window, []domain.Interval{iv(0, 1440)}))
	assert.Empty(t, FreeIntervals(domain.Interval{}, nil))
}

// Scenario: bay-1 10:00-24:00 with a confirmed reservation 14:00-15:00
func TestCheckSlot_ConflictAndAdjacency(t *testing.T) {
	window := iv(600, 1440)
	a := confirmed("A", "14:00", 60)
	reservations := []*domain.Reservation{a}

	res, err := CheckSlot(window, reservations, iv(840, 900), "")
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.NotNil(t, res.Conflict)
	assert.Equal(t, "A", res.Conflict.ID)

	res, err = CheckSlot(window, reservations, iv(900, 960), "")
	require.NoError(t, err)
	assert.True(t, res.Available, "slot starting when A ends is available")

	res, err = CheckSlot(window, reservations, iv(780, 840), "")
	require.NoError(t, err)
	assert.True(t, res.Available, "slot ending when A starts is available")

	res, err = CheckSlot(window, reservations, iv(781, 841), "")
	require.NoError(t, err)
	assert.False(t, res.Available, "one minute overlap is a conflict")

	res, err = CheckSlot(window, reservations, iv(840, 900), "A")
	require.NoError(t, err)
	assert.True(t, res.Available, "own interval is excluded")
}

func TestCheckSlot_IgnoresInactive(t *testing.T) {
	pending := confirmed("P", "14:00", 60)
	pending.Status = domain.StatusPending
	cancelled := confirmed("C", "14:00", 60)
	cancelled.Status = domain.StatusCancelled

	res, err := CheckSlot(iv(600, 1440), []*domain.Reservation{pending, cancelled}, iv(840, 900), "")
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCheckSlot_ReportsEarliestConflict(t *testing.T) {
	reservations := []*domain.Reservation{confirmed("late", "15:00", 60), confirmed("early", "13:00", 60)}

	res, err := CheckSlot(iv(600, 1440), reservations, iv(810, 930), "")
	require.NoError(t, err)
	require.NotNil(t, res.Conflict)
	assert.Equal(t, "early", res.Conflict.ID)
}

func TestCheckSlot_Rejections(t *testing.T) {
	window := iv(600, 1440)

	_, err := CheckSlot(window, nil, iv(700, 700), "")
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	_, err = CheckSlot(window, nil, iv(570, 630), "")
	assert.ErrorIs(t, err, domain.ErrOutsideBusinessHours)

	_, err = CheckSlot(window, nil, iv(1410, 1470), "")
	assert.ErrorIs(t, err, domain.ErrOutsideBusinessHours)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSlots(t *testing.T) {
	free := []domain.Interval{iv(600, 720), iv(800, 850)}

	got := slices.Collect(Slots(free, 60, 30))
	assert.Equal(t, []domain.Interval{iv(600, 660), iv(630, 690), iv(660, 720)}, got)

	got = slices.Collect(Slots(free, 45, 30))
	assert.Equal(t, []domain.Interval{iv(600, 645), iv(630, 675), iv(660, 705), iv(800, 845)}, got,
		"candidates restart at each free interval's start")

	assert.Empty(t, slices.Collect(Slots(free, 0, 30)))
	assert.Empty(t, slices.Collect(Slots(free, 30, 0)))
}

func TestSlots_StopsEarly(t *testing.T) {
	count := 0
	for range Slots([]domain.Interval{iv(0, 1440)}, 15, 15) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}
