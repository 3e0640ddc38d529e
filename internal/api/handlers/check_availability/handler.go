package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

const (
	msgInvalidParams    = "обязательны resourceId, date (YYYY-MM-DD), start (HH:MM) и duration"
	msgResourceNotFound = "бокс не найден"
	msgInvalidDuration  = "недопустимая длительность брони"
	msgOutsideHours     = "интервал выходит за часы работы бокса"
)

// CheckResponse HTTP response model
type CheckResponse struct {
	ResourceID string                    `json:"resourceId"`
	Date       string                    `json:"date"`
	StartTime  string                    `json:"startTime"`
	EndTime    string                    `json:"endTime"`
	Available  bool                      `json:"available"`
	Conflict   *handlers.ConflictDetails `json:"conflict,omitempty"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/check
// Query params: resourceId, date, start, duration, excludeId (необязательный, для переноса брони)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resourceID := q.Get("resourceId")

	date, dateErr := handlers.ParseDate(q.Get("date"))
	start, startErr := handlers.ParseTime(q.Get("start"))
	duration, durErr := handlers.QueryInt(r, "duration", 0)
	if resourceID == "" || dateErr != nil || startErr != nil || durErr != nil {
		h.logger.Warn("GET /availability/check - Invalid query: %s", r.URL.RawQuery)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.CheckSlot(r.Context(), availability.CheckRequest{
		ResourceID:           resourceID,
		Date:                 date,
		StartTime:            start,
		DurationMinutes:      duration,
		ExcludeReservationID: q.Get("excludeId"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			h.logger.Warn("GET /availability/check - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrInvalidDuration):
			h.logger.Warn("GET /availability/check - Invalid duration: %d", duration)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, domain.ErrOutsideBusinessHours):
			h.logger.Warn("GET /availability/check - Outside business hours: %v", err)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /availability/check - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability/check - Failed to check slot: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := CheckResponse{
		ResourceID: result.ResourceID,
		Date:       result.Date.Format(domain.DateFormat),
		StartTime:  result.Interval.StartTime().String(),
		EndTime:    result.Interval.EndTime().String(),
		Available:  result.Available,
	}
	if c := result.Conflict; c != nil {
		iv := c.Interval()
		resp.Conflict = &handlers.ConflictDetails{
			ReservationID: c.ID,
			ResourceID:    c.ResourceID,
			Date:          c.Date.Format(domain.DateFormat),
			StartTime:     iv.StartTime().String(),
			EndTime:       iv.EndTime().String(),
		}
	}

	h.logger.Info("GET /availability/check - resource_id=%s, date=%s, interval=%s, available=%t",
		resourceID, resp.Date, result.Interval, result.Available)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
