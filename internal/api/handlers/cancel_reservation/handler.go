package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations/models"
)

const (
	msgMissingReservationID = "ID брони обязателен"
	msgNotFound             = "бронь не найдена"
	msgResourceBusy         = "бокс занят другой операцией, повторите запрос"
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

// Handle POST /api/v1/reservations/{reservationId}/cancel
// Повторная отмена возвращает ту же отмененную бронь.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]
	if reservationID == "" {
		h.logger.Warn("POST /reservations/{id}/cancel - Missing reservation ID")
		handlers.RespondBadRequest(w, msgMissingReservationID)
		return
	}

	reservation, err := h.service.Cancel(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/cancel - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrResourceBusy):
			h.logger.Warn("POST /reservations/{id}/cancel - Resource busy: reservation_id=%s", reservationID)
			handlers.RespondBusy(w, msgResourceBusy)

		default:
			h.logger.Error("POST /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/cancel - Reservation cancelled: reservation_id=%s", reservationID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(reservation))
}
