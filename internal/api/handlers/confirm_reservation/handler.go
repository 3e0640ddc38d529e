package confirm_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations/models"
	confirmReservation "github.com/m04kA/SMC-BayBookingService/internal/usecase/confirm_reservation"
)

const (
	msgMissingReservationID = "ID брони обязателен"
	msgNotFound             = "бронь не найдена"
	msgCannotConfirm        = "отмененную бронь нельзя подтвердить"
	msgSlotUnavailable      = "интервал брони уже занят"
	msgResourceBusy         = "бокс занят другой операцией, повторите запрос"
)

type Handler struct {
	useCase ConfirmReservationUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]
	if reservationID == "" {
		h.logger.Warn("POST /reservations/{id}/confirm - Missing reservation ID")
		handlers.RespondBadRequest(w, msgMissingReservationID)
		return
	}

	reservation, err := h.useCase.Execute(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, confirmReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/confirm - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmReservation.ErrCannotConfirm):
			h.logger.Warn("POST /reservations/{id}/confirm - Reservation is cancelled: reservation_id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotConfirm)

		case errors.Is(err, confirmReservation.ErrSlotUnavailable):
			h.logger.Warn("POST /reservations/{id}/confirm - Slot unavailable: %v", err)
			handlers.RespondConflict(w, msgSlotUnavailable, err)

		case errors.Is(err, confirmReservation.ErrResourceBusy):
			h.logger.Warn("POST /reservations/{id}/confirm - Resource busy: reservation_id=%s", reservationID)
			handlers.RespondBusy(w, msgResourceBusy)

		default:
			h.logger.Error("POST /reservations/{id}/confirm - Failed to confirm reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/confirm - Reservation confirmed: reservation_id=%s", reservationID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(reservation))
}
