package create_service

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/catalog"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgValidationFailed   = "revisa los datos del servicio"
)

type CatalogService interface {
	Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error)
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

// Handle POST /api/v1/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /admin/services - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /admin/services - Invalid service: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)
		default:
			h.logger.Error("POST /admin/services - Failed to create service: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/services - Service created: service_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
