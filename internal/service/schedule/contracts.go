package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListBusinessHours(ctx context.Context) ([]*domain.BusinessHour, error)
	UpsertBusinessHour(ctx context.Context, hour *domain.BusinessHour) (*domain.BusinessHour, error)
	ListClosedDays(ctx context.Context, from *time.Time) ([]*domain.ClosedDay, error)
	CreateClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error)
	DeleteClosedDay(ctx context.Context, id uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
