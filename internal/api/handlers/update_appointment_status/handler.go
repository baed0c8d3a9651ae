package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidAppointmentID = "ID de cita inválido"
	msgInvalidRequestBody   = "cuerpo de la solicitud inválido"
	msgInvalidStatus        = "estado inválido, se espera pending, confirmed o cancelled"
	msgNotFound             = "cita no encontrada"
	msgInvalidTransition    = "no se puede cambiar la cita a ese estado"
	msgSlotTaken            = "el horario de esta cita ya fue ocupado por otra reserva"
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

// Handle PATCH /api/v1/admin/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/status - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgInvalidStatus, err)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid transition: appointment_id=%s, status=%s",
				appointmentID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrSlotTaken):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Slot taken: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("PATCH /admin/appointments/{id}/status - Failed to update status: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/status - Status updated: appointment_id=%s, status=%s",
		appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
