package get_available_bays

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
)

const (
	msgInvalidParams    = "обязательны date (YYYY-MM-DD), start (HH:MM) и duration"
	msgResourceNotFound = "бокс не найден"
	msgInvalidDuration  = "недопустимая длительность брони"
)

// BayResponse свободный бокс
type BayResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AvailableBaysResponse HTTP response model
type AvailableBaysResponse struct {
	Date      string        `json:"date"`
	StartTime string        `json:"startTime"`
	EndTime   string        `json:"endTime"`
	Bays      []BayResponse `json:"bays"`
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

// Handle GET /api/v1/availability/bays
// Query params: date, start, duration, resourceIds (через запятую, по умолчанию все боксы)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, dateErr := handlers.ParseDate(q.Get("date"))
	start, startErr := handlers.ParseTime(q.Get("start"))
	duration, durErr := handlers.QueryInt(r, "duration", 0)
	if dateErr != nil || startErr != nil || durErr != nil {
		h.logger.Warn("GET /availability/bays - Invalid query: %s", r.URL.RawQuery)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	var ids []string
	for _, id := range strings.Split(q.Get("resourceIds"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	bays, err := h.service.AvailableResources(r.Context(), availability.AnyRequest{
		ResourceIDs:     ids,
		Date:            date,
		StartTime:       start,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			h.logger.Warn("GET /availability/bays - Resource not found: %v", err)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrInvalidDuration):
			h.logger.Warn("GET /availability/bays - Invalid duration: %d", duration)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /availability/bays - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability/bays - Failed to query bays: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	interval := domain.NewInterval(start, duration)
	resp := AvailableBaysResponse{
		Date:      date.Format(domain.DateFormat),
		StartTime: interval.StartTime().String(),
		EndTime:   interval.EndTime().String(),
		Bays:      make([]BayResponse, 0, len(bays)),
	}
	for _, b := range bays {
		resp.Bays = append(resp.Bays, BayResponse{ID: b.ID, Name: b.Name})
	}

	h.logger.Info("GET /availability/bays - %d bays free on %s at %s", len(resp.Bays), resp.Date, interval)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
