package list_reservations

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations/models"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// ToListRequest собирает фильтр из query параметров: resourceId, date, status, limit
func ToListRequest(q url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{Limit: defaultLimit}

	if v := q.Get("resourceId"); v != "" {
		req.ResourceID = &v
	}
	if v := q.Get("date"); v != "" {
		d, err := handlers.ParseDate(v)
		if err != nil {
			return nil, err
		}
		req.Date = &d
	}
	if v := q.Get("status"); v != "" {
		req.Status = &v
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 || limit > maxLimit {
			return nil, fmt.Errorf("%w: limit must be within 1..%d", domain.ErrValidation, maxLimit)
		}
		req.Limit = limit
	}

	return req, nil
}
