package update_business_hour

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/schedule"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidDayOfWeek   = "día de la semana inválido, se espera 0 (domingo) a 6 (sábado)"
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidHours       = "horario inválido: la apertura debe ser anterior al cierre"
)

type ScheduleService interface {
	UpdateBusinessHour(ctx context.Context, dayOfWeek int, req *models.UpdateBusinessHourRequest) (*models.BusinessHourResponse, error)
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

// Handle PUT /api/v1/admin/business-hours/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dayOfWeek, err := strconv.Atoi(mux.Vars(r)["dayOfWeek"])
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		h.logger.Warn("PUT /admin/business-hours/{day} - Invalid day of week: %q", mux.Vars(r)["dayOfWeek"])
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.UpdateBusinessHourRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/business-hours/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /admin/business-hours/{day} - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgInvalidHours, err)
		return
	}

	result, err := h.service.UpdateBusinessHour(r.Context(), dayOfWeek, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /admin/business-hours/{day} - Invalid hours: day=%d, error=%v", dayOfWeek, err)
			handlers.RespondBadRequest(w, msgInvalidHours)
		default:
			h.logger.Error("PUT /admin/business-hours/{day} - Failed to update business hour: day=%d, error=%v", dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/business-hours/{day} - Business hour updated: day=%d", dayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}
