package delete_appointment

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
	msgReasonTooLong        = "el motivo no puede superar 500 caracteres"
	msgNotFound             = "cita no encontrada"
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

// Handle DELETE /api/v1/admin/appointments/{appointmentId}
// Тело {"reason": "..."} необязательно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("DELETE /admin/appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.DeleteBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("DELETE /admin/appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("DELETE /admin/appointments/{id} - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgReasonTooLong, err)
		return
	}

	result, err := h.service.DeleteByAdmin(r.Context(), appointmentID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /admin/appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgReasonTooLong)

		default:
			h.logger.Error("DELETE /admin/appointments/{id} - Failed to delete appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/appointments/{id} - Appointment deleted: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
