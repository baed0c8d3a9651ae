package realtime

import (
	"context"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

// Publisher получатель изменений записей (хаб, Kafka)
type Publisher interface {
	Publish(ctx context.Context, change *domain.AppointmentChange) error
}

// MetricsRecorder интерфейс метрик realtime
type MetricsRecorder interface {
	AddRealtimeSubscribers(delta float64)
	IncRealtimeEvents(eventType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
