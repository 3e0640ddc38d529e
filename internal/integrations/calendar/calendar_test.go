package calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/pkg/ptr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeOK},
		{fmt.Errorf("google: %w: 401", ErrAuth), OutcomeAuth},
		{fmt.Errorf("google: %w", ErrNotFound), OutcomeNotFound},
		{fmt.Errorf("google: %w", ErrRateLimited), OutcomeRateLimited},
		{ErrUnavailable, OutcomeUnavailable},
		{fmt.Errorf("call: %w", context.DeadlineExceeded), OutcomeUnavailable},
		{errors.New("boom"), OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), "%v", tt.err)
	}
}

func TestNewEvent(t *testing.T) {
	bangkok, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	res := &domain.Reservation{
		ID:              "3f2c",
		ResourceID:      "bay-2",
		Date:            time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       "23:30",
		DurationMinutes: 30,
		CustomerName:    "Somchai",
		PartySize:       3,
		CustomerPhone:   ptr.Ptr("+66 81 000 0000"),
	}
	ev := NewEvent(res, &domain.Resource{ID: "bay-2", Name: "Bay 2", Location: bangkok})

	assert.Equal(t, "3f2c", ev.Key)
	assert.Equal(t, "Somchai (3 pax)", ev.Title)
	assert.Contains(t, ev.Description, "Reservation: 3f2c")
	assert.Contains(t, ev.Description, "Bay: Bay 2")
	assert.Contains(t, ev.Description, "+66 81 000 0000")
	assert.NotContains(t, ev.Description, "Notes")
	assert.True(t, ev.Start.Equal(time.Date(2026, 10, 20, 23, 30, 0, 0, bangkok)))
	assert.True(t, ev.End.Equal(time.Date(2026, 10, 21, 0, 0, 0, 0, bangkok)))
}
