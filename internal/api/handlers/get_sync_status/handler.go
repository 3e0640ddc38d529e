package get_sync_status

import (
	"net/http"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
)

type Handler struct {
	provider StatusProvider
}

func NewHandler(provider StatusProvider) *Handler {
	return &Handler{provider: provider}
}

// Handle GET /api/v1/sync/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.provider.Status())
}
