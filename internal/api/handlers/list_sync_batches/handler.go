package list_sync_batches

import (
	"net/http"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/service/syncbatches/models"
)

const msgInvalidLimit = "некорректный параметр limit"

type Handler struct {
	service SyncBatchService
	logger  Logger
}

func NewHandler(service SyncBatchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sync/batches
// Query params: limit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil {
		h.logger.Warn("GET /sync/batches - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLimit)
		return
	}

	list, err := h.service.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /sync/batches - Failed to list sync batches: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /sync/batches - Sync batches retrieved: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBatchList(list))
}
