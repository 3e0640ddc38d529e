package memcal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/integrations/calendar"
)

func TestCalendar_Lifecycle(t *testing.T) {
	c := New()
	ctx := context.Background()
	start := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	ev := calendar.Event{Key: "r1", Title: "Ann (2 pax)", Start: start, End: start.Add(time.Hour)}

	ref, err := c.UpsertEvent(ctx, "cal-1", nil, ev)
	require.NoError(t, err)

	ev.Title = "Ann (3 pax)"
	same, err := c.UpsertEvent(ctx, "cal-1", &ref, ev)
	require.NoError(t, err)
	assert.Equal(t, ref, same)

	events := c.Events("cal-1")
	require.Len(t, events, 1)
	assert.Equal(t, "Ann (3 pax)", events[0].Title)

	_, err = c.UpsertEvent(ctx, "cal-2", &ref, ev)
	assert.ErrorIs(t, err, calendar.ErrNotFound, "event lives in another calendar")

	require.NoError(t, c.DeleteEvent(ctx, "cal-1", ref))
	assert.ErrorIs(t, c.DeleteEvent(ctx, "cal-1", ref), calendar.ErrNotFound)
	assert.Empty(t, c.Events("cal-1"))

	assert.Equal(t, Calls{Create: 1, Update: 2, Delete: 2}, c.Calls())
	c.ResetCalls()
	assert.Zero(t, c.Calls().Total())
}

func TestCalendar_Failures(t *testing.T) {
	c := New()
	ctx := context.Background()

	c.FailAuth(calendar.ErrAuth)
	assert.ErrorIs(t, c.Authenticate(ctx), calendar.ErrAuth)
	c.FailAuth(nil)
	assert.NoError(t, c.Authenticate(ctx))

	c.FailKey("x", calendar.ErrRateLimited)
	_, err := c.UpsertEvent(ctx, "cal-1", nil, calendar.Event{Key: "x"})
	assert.ErrorIs(t, err, calendar.ErrRateLimited)

	_, err = c.UpsertEvent(ctx, "cal-1", nil, calendar.Event{Key: "y"})
	assert.NoError(t, err)

	c.FailKey("x", nil)
	_, err = c.UpsertEvent(ctx, "cal-1", nil, calendar.Event{Key: "x"})
	assert.NoError(t, err)
}
