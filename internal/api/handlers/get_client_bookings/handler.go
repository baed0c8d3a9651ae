package get_client_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings"
)

const (
	msgMissingEmail      = "el correo electrónico es obligatorio"
	msgInvalidEmail      = "correo electrónico inválido"
	msgInvalidActiveOnly = "el parámetro activeOnly debe ser true o false"
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

// Handle GET /api/v1/bookings?email=&activeOnly=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	email := query.Get("email")
	if email == "" {
		h.logger.Warn("GET /bookings - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	activeOnly := true
	if raw := query.Get("activeOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid activeOnly: %v", err)
			handlers.RespondBadRequest(w, msgInvalidActiveOnly)
			return
		}
		activeOnly = parsed
	}

	result, err := h.service.GetClientBookings(r.Context(), email, activeOnly)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid email: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmail)
		default:
			h.logger.Error("GET /bookings - Failed to get client bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
