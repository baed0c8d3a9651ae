package delete_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	DeleteByAdmin(ctx context.Context, id uuid.UUID, reason string) (*models.DeleteBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
