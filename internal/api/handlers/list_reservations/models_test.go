package list_reservations

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

func TestToListRequest(t *testing.T) {
	req, err := ToListRequest(url.Values{
		"resourceId": {"bay-1"},
		"date":       {"2026-10-20"},
		"status":     {"CONFIRMED"},
		"limit":      {"5"},
	})
	require.NoError(t, err)
	require.NotNil(t, req.ResourceID)
	assert.Equal(t, "bay-1", *req.ResourceID)
	require.NotNil(t, req.Date)
	assert.True(t, req.Date.Equal(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, req.Limit)

	filter, err := req.ToDomainFilter()
	require.NoError(t, err)
	assert.Equal(t, []domain.ReservationStatus{domain.StatusConfirmed}, filter.Statuses)
}

func TestToListRequest_Defaults(t *testing.T) {
	req, err := ToListRequest(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.ResourceID)
	assert.Nil(t, req.Date)
	assert.Equal(t, defaultLimit, req.Limit)
}

func TestToListRequest_Invalid(t *testing.T) {
	for name, q := range map[string]url.Values{
		"bad date":      {"date": {"tomorrow"}},
		"zero limit":    {"limit": {"0"}},
		"huge limit":    {"limit": {"100000"}},
		"non-int limit": {"limit": {"10abc"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ToListRequest(q)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
