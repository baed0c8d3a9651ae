package create_closed_day

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/schedule"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgValidationFailed   = "fecha inválida, se espera AAAA-MM-DD"
	msgAlreadyClosed      = "esa fecha ya está marcada como cerrada"
)

type ScheduleService interface {
	AddClosedDay(ctx context.Context, req *models.CreateClosedDayRequest) (*models.ClosedDayResponse, error)
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

// Handle POST /api/v1/admin/closed-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClosedDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/closed-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /admin/closed-days - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	result, err := h.service.AddClosedDay(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrClosedDayExists):
			h.logger.Warn("POST /admin/closed-days - Date already closed: date=%s", req.Date)
			handlers.RespondConflict(w, msgAlreadyClosed)
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/closed-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)
		default:
			h.logger.Error("POST /admin/closed-days - Failed to add closed day: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/closed-days - Closed day added: id=%s, date=%s", result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
