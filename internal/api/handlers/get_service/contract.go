package get_service

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
