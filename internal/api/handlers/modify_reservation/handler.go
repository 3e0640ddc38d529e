package modify_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations/models"
	modifyReservation "github.com/m04kA/SMC-BayBookingService/internal/usecase/modify_reservation"
)

const (
	msgMissingReservationID = "ID брони обязателен"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound             = "бронь не найдена или отменена"
	msgResourceNotFound     = "бокс не найден"
	msgInvalidDuration      = "недопустимая длительность брони"
	msgOutsideHours         = "интервал выходит за часы работы бокса"
	msgInvalidInput         = "некорректные данные брони"
	msgSlotUnavailable      = "новый интервал занят"
	msgResourceBusy         = "бокс занят другой операцией, повторите запрос"
)

type Handler struct {
	useCase ModifyReservationUseCase
	logger  Logger
}

func NewHandler(useCase ModifyReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]
	if reservationID == "" {
		h.logger.Warn("PATCH /reservations/{id} - Missing reservation ID")
		handlers.RespondBadRequest(w, msgMissingReservationID)
		return
	}

	var req ModifyReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, modifyReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrResourceNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Resource not found: %v", err)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrInvalidDuration):
			h.logger.Warn("PATCH /reservations/{id} - Invalid duration: reservation_id=%s", reservationID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, domain.ErrOutsideBusinessHours):
			h.logger.Warn("PATCH /reservations/{id} - Outside business hours: reservation_id=%s", reservationID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, modifyReservation.ErrInvalidInput), errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("PATCH /reservations/{id} - Slot unavailable: %v", err)
			handlers.RespondConflict(w, msgSlotUnavailable, err)

		case errors.Is(err, modifyReservation.ErrResourceBusy):
			h.logger.Warn("PATCH /reservations/{id} - Resource busy: reservation_id=%s", reservationID)
			handlers.RespondBusy(w, msgResourceBusy)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to modify reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation modified successfully: reservation_id=%s, resource_id=%s",
		result.ID, result.ResourceID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(result))
}
