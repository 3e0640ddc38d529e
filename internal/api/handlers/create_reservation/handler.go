package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-BayBookingService/internal/usecase/create_reservation"
)

// HeaderStaffID идентификатор сотрудника, создающего бронь
const HeaderStaffID = "X-Staff-ID"

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgResourceNotFound   = "бокс не найден"
	msgInvalidDuration    = "недопустимая длительность брони"
	msgOutsideHours       = "интервал выходит за часы работы бокса"
	msgInvalidInput       = "некорректные данные брони"
	msgSlotUnavailable    = "выбранный интервал занят"
	msgResourceBusy       = "бокс занят другой операцией, повторите запрос"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(r.Header.Get(HeaderStaffID))
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			h.logger.Warn("POST /reservations - Resource not found: resource_id=%s", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrInvalidDuration):
			h.logger.Warn("POST /reservations - Invalid duration: resource_id=%s, duration=%d", req.ResourceID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, domain.ErrOutsideBusinessHours):
			h.logger.Warn("POST /reservations - Outside business hours: resource_id=%s, date=%s, start=%s",
				req.ResourceID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createReservation.ErrInvalidInput), errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrSlotUnavailable):
			h.logger.Warn("POST /reservations - Slot unavailable: %v", err)
			handlers.RespondConflict(w, msgSlotUnavailable, err)

		case errors.Is(err, createReservation.ErrResourceBusy):
			h.logger.Warn("POST /reservations - Resource busy: resource_id=%s", req.ResourceID)
			handlers.RespondBusy(w, msgResourceBusy)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: resource_id=%s, error=%v", req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, resource_id=%s, status=%s",
		result.ID, result.ResourceID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainReservation(result))
}
