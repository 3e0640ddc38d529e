package list_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations/models"
)

const (
	msgInvalidQuery     = "некорректные параметры запроса"
	msgResourceNotFound = "бокс не найден"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: resourceId, date (YYYY-MM-DD), status (pending|confirmed|cancelled), limit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			h.logger.Warn("GET /reservations - Resource not found: %v", err)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservationList(list))
}
