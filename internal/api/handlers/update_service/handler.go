package update_service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/catalog"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "ID de servicio inválido"
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgValidationFailed   = "revisa los datos del servicio"
	msgServiceNotFound    = "servicio no encontrado"
)

type CatalogService interface {
	Update(ctx context.Context, id uuid.UUID, req *models.ServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	result, err := h.service.Update(r.Context(), serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /admin/services/{id} - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /admin/services/{id} - Invalid service: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)
		default:
			h.logger.Error("PUT /admin/services/{id} - Failed to update service: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated: service_id=%s", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
