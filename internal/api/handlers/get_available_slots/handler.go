package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/PawsBubbles-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "el servicio es obligatorio"
	msgInvalidServiceID = "ID de servicio inválido"
	msgMissingDate      = "la fecha es obligatoria"
	msgInvalidDate      = "formato de fecha inválido, se espera AAAA-MM-DD"
	msgServiceNotFound  = "servicio no encontrado"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability/slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /availability/slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /availability/slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability/slots - Failed to get slots: service_id=%s, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleMinDate GET /api/v1/availability/min-date
func (h *Handler) HandleMinDate(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.MinBookingDate(r.Context())
	if err != nil {
		h.logger.Error("GET /availability/min-date - Failed to compute min date: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromMinDateResponse(result))
}
