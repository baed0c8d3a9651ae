package auth

import (
	"context"
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

// AdminRepository интерфейс для работы с учётными записями администраторов
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
