package delete_service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/catalog"
)

const (
	msgInvalidServiceID = "ID de servicio inválido"
	msgServiceNotFound  = "servicio no encontrado"
)

type CatalogService interface {
	Delete(ctx context.Context, id uuid.UUID) error
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

// Handle DELETE /api/v1/admin/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("DELETE /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /admin/services/{id} - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		default:
			h.logger.Error("DELETE /admin/services/{id} - Failed to delete service: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted: service_id=%s", serviceID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
