package get_sync_batch

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/service/syncbatches"
	"github.com/m04kA/SMC-BayBookingService/internal/service/syncbatches/models"
)

const msgNotFound = "тик синхронизации не найден"

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

// Handle GET /api/v1/sync/batches/{batchId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["batchId"]

	batch, err := h.service.GetByID(r.Context(), batchID)
	if err != nil {
		switch {
		case errors.Is(err, syncbatches.ErrBatchNotFound):
			h.logger.Warn("GET /sync/batches/{id} - Sync batch not found: batch_id=%s", batchID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /sync/batches/{id} - Failed to get sync batch: batch_id=%s, error=%v", batchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBatch(batch))
}
