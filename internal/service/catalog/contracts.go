package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListCache кэш списка услуг
type ListCache interface {
	Get() ([]*domain.Service, bool)
	Store(services []*domain.Service)
	Invalidate()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
