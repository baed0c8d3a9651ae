package stream_appointments

import (
	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/internal/realtime"
)

type Hub interface {
	Subscribe(filter realtime.Filter) (<-chan *domain.AppointmentChange, func())
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
