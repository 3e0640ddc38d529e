package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

const (
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams    = "некорректные параметры duration, step или limit"
	msgResourceNotFound = "бокс не найден"
	msgInvalidDuration  = "недопустимая длительность брони"

	defaultDuration = 60
	defaultLimit    = 200
)

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

// Handle GET /api/v1/resources/{resourceId}/availability
// Query params: date (required, YYYY-MM-DD), duration (minutes, default 60), step (minutes), limit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /resources/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := handlers.QueryInt(r, "duration", defaultDuration)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	step, err := handlers.QueryInt(r, "step", 0)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid step: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	limit, err := handlers.QueryInt(r, "limit", defaultLimit)
	if err != nil || limit <= 0 {
		h.logger.Warn("GET /resources/{id}/availability - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.FreeSlots(r.Context(), availability.SlotsRequest{
		ResourceID:      resourceID,
		Date:            date,
		DurationMinutes: duration,
		StepMinutes:     step,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/availability - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrInvalidDuration):
			h.logger.Warn("GET /resources/{id}/availability - Invalid duration: resource_id=%s, duration=%d", resourceID, duration)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /resources/{id}/availability - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /resources/{id}/availability - Failed to get slots: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromServiceResult(result, duration, limit)

	h.logger.Info("GET /resources/{id}/availability - Slots retrieved successfully: resource_id=%s, date=%s, slots_count=%d",
		resourceID, dateStr, len(response.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
