package get_closed_days

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/schedule/models"
)

const msgInvalidFrom = "formato de fecha inválido, se espera AAAA-MM-DD"

type ScheduleService interface {
	ListClosedDays(ctx context.Context, from *time.Time) (*models.ClosedDaysResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service  ScheduleService
	location *time.Location
	logger   Logger
}

func NewHandler(service ScheduleService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/closed-days?from=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var from *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, raw, h.location)
		if err != nil {
			h.logger.Warn("GET /admin/closed-days - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = &parsed
	}

	result, err := h.service.ListClosedDays(r.Context(), from)
	if err != nil {
		h.logger.Error("GET /admin/closed-days - Failed to list closed days: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
