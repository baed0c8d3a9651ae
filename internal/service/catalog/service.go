package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	cache       ListCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога. cache может быть nil.
func NewService(serviceRepo ServiceRepository, cache ListCache, logger Logger) *Service {
	if cache == nil {
		cache = (*LRUListCache)(nil)
	}
	return &Service{
		serviceRepo: serviceRepo,
		cache:       cache,
		logger:      logger,
	}
}

// List возвращает все услуги по возрастанию цены
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	if services, ok := s.cache.Get(); ok {
		return models.FromDomainServiceList(services), nil
	}

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.cache.Store(services)

	s.logger.Info("List: loaded %d services from storage", len(services))
	return models.FromDomainServiceList(services), nil
}

// Get возвращает услугу по ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ServiceResponse, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Get: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Get: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// Create добавляет услугу в каталог
func (s *Service) Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%s", req.Name)

	svc := req.ToDomainService()
	if err := validateService(svc); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate()

	s.logger.Info("Create: successfully created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// Update изменяет услугу. Уже созданные записи хранят свою копию данных и не меняются.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s", id)

	svc := req.ToDomainService()
	svc.ID = id
	if err := validateService(svc); err != nil {
		s.logger.Warn("Update: validation failed for service id=%s: %v", id, err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, svc)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate()

	s.logger.Info("Update: successfully updated service id=%s", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу из каталога
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting service id=%s", id)

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%s not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate()

	s.logger.Info("Delete: successfully deleted service id=%s", id)
	return nil
}

// validateService проверяет бизнес-правила услуги
func validateService(svc *domain.Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	svc.Description = strings.TrimSpace(svc.Description)

	if svc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(svc.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if utf8.RuneCountInString(svc.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if svc.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if svc.DurationMinutes < domain.MinServiceDurationMinutes || svc.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if svc.DurationMinutes%domain.DefaultSlotStepMinutes != 0 {
		return fmt.Errorf("%w: durationMinutes must be a multiple of %d", ErrInvalidInput, domain.DefaultSlotStepMinutes)
	}
	if !svc.PetSize.Valid() {
		return fmt.Errorf("%w: petSize must be one of %v", ErrInvalidInput, domain.PetSizes)
	}
	return nil
}
