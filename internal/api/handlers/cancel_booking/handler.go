package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "ID de reserva inválido"
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidEmail       = "correo electrónico inválido"
	msgNotFound           = "reserva no encontrada"
	msgForbidden          = "esta reserva no pertenece a este correo"
	msgAlreadyCancelled   = "la reserva ya está cancelada"
	msgTooLate            = "Lo sentimos, solo puedes cancelar hasta 3 horas antes de la cita."
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgInvalidEmail, err)
		return
	}

	result, err := h.service.CancelByClient(r.Context(), bookingID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%s", bookingID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Already cancelled: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, bookings.ErrTooLateToCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Too late to cancel: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgTooLate)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmail)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
