package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/config"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

func TestFromConfig(t *testing.T) {
	reg, err := FromConfig([]config.ResourceConfig{
		{
			ID:         "bay-1",
			Name:       "Bay 1",
			CalendarID: "cal-1",
			Timezone:   "Asia/Bangkok",
			Hours: config.HoursConfig{
				Open:  "10:00",
				Close: "24:00",
				Days: map[string]config.DayConfig{
					"Sunday": {Open: "12:00", Close: "20:00"},
					"monday": {Closed: true},
				},
			},
		},
		{ID: "bay-2", CalendarID: "cal-2", Hours: config.HoursConfig{Open: "09:00", Close: "23:00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"bay-1", "bay-2"}, reg.IDs())

	bay1, err := reg.Get("bay-1")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", bay1.Location.String())

	sunday := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	w, open := bay1.WindowOn(sunday)
	require.True(t, open)
	assert.Equal(t, domain.Interval{Start: 720, End: 1200}, w)

	_, open = bay1.WindowOn(sunday.AddDate(0, 0, 1))
	assert.False(t, open)

	bay2, err := reg.Get("bay-2")
	require.NoError(t, err)
	assert.Equal(t, "bay-2", bay2.Name)
	assert.Equal(t, time.UTC, bay2.Location)
}

func TestFromConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ResourceConfig
	}{
		{"bad timezone", config.ResourceConfig{ID: "b", CalendarID: "c", Timezone: "Mars/Olympus", Hours: config.HoursConfig{Open: "10:00", Close: "20:00"}}},
		{"bad open", config.ResourceConfig{ID: "b", CalendarID: "c", Hours: config.HoursConfig{Open: "25:00", Close: "20:00"}}},
		{"close before open", config.ResourceConfig{ID: "b", CalendarID: "c", Hours: config.HoursConfig{Open: "20:00", Close: "10:00"}}},
		{"unknown weekday", config.ResourceConfig{ID: "b", CalendarID: "c", Hours: config.HoursConfig{Open: "10:00", Close: "20:00", Days: map[string]config.DayConfig{"funday": {Closed: true}}}}},
		{"no calendar", config.ResourceConfig{ID: "b", Hours: config.HoursConfig{Open: "10:00", Close: "20:00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromConfig([]config.ResourceConfig{tt.cfg})
			assert.ErrorIs(t, err, ErrInvalidResource)
		})
	}
}

func TestNew_DuplicateID(t *testing.T) {
	hours := domain.BusinessHours{Default: domain.DayHours{Open: "10:00", Close: "20:00"}}
	_, err := New([]domain.Resource{
		{ID: "bay-1", CalendarID: "a", Hours: hours},
		{ID: "bay-1", CalendarID: "b", Hours: hours},
	})
	assert.ErrorIs(t, err, ErrInvalidResource)
}

func TestGet_NotFound(t *testing.T) {
	reg, err := New(nil)
	require.NoError(t, err)

	_, err = reg.Get("bay-9")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}
