package delete_closed_day

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/schedule"
)

const (
	msgInvalidID = "ID de día cerrado inválido"
	msgNotFound  = "día cerrado no encontrado"
)

type ScheduleService interface {
	DeleteClosedDay(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/closed-days/{closedDayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "closedDayId")
	if err != nil {
		h.logger.Warn("DELETE /admin/closed-days/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteClosedDay(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, schedule.ErrClosedDayNotFound):
			h.logger.Warn("DELETE /admin/closed-days/{id} - Not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("DELETE /admin/closed-days/{id} - Failed to delete closed day: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/closed-days/{id} - Closed day deleted: id=%s", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
