package trigger_sync

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/scheduler"
	"github.com/m04kA/SMC-BayBookingService/internal/service/syncbatches/models"
)

const msgStopped = "сервис останавливается, синхронизация недоступна"

type Handler struct {
	trigger SyncTrigger
	logger  Logger
}

func NewHandler(trigger SyncTrigger, logger Logger) *Handler {
	return &Handler{
		trigger: trigger,
		logger:  logger,
	}
}

// Handle POST /api/v1/sync/trigger
// Выполняет один тик синхронно. Итог тика (в т.ч. failed) - в теле ответа, статус 200.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	batch, err := h.trigger.Trigger(r.Context(), domain.TriggerManual)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrStopped):
			h.logger.Warn("POST /sync/trigger - Scheduler stopped")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStopped)

		default:
			h.logger.Error("POST /sync/trigger - Failed to run sync tick: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sync/trigger - Sync tick finished: batch_id=%s, outcome=%s", batch.ID, batch.Outcome)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBatch(batch))
}
