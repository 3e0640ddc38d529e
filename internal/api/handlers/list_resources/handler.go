package list_resources

import (
	"net/http"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
)

type Handler struct {
	registry ResourceRegistry
	logger   Logger
}

func NewHandler(registry ResourceRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle GET /api/v1/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resources := h.registry.All()
	h.logger.Info("GET /resources - Resources retrieved: count=%d", len(resources))
	handlers.RespondJSON(w, http.StatusOK, FromDomainResources(resources))
}
