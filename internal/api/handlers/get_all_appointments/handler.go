package get_all_appointments

import (
	"net/http"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/appointments - Failed to list appointments: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
