package get_all_appointments

import (
	"context"

	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListAll(ctx context.Context) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
