package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/PawsBubbles-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgValidationFailed   = "revisa los datos de la reserva"
	msgSlotNotAvailable   = "el horario seleccionado ya no está disponible"
	msgServiceNotFound    = "servicio no encontrado"
	msgDayClosed          = "no atendemos en la fecha seleccionada"
	msgInvalidTimeSlot    = "horario inválido para la fecha seleccionada"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Normalize()

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgValidationFailed)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrDayClosed):
			h.logger.Warn("POST /bookings - Day closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDayClosed)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%s, date=%s, error=%v",
				req.ServiceID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, date=%s, time=%s",
		result.Appointment.ID, req.Date, result.Appointment.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
