package models

import (
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

// Request модели

// ServiceRequest запрос на создание или изменение услуги
type ServiceRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Description     string `json:"description" validate:"max=1000"`
	Price           int64  `json:"price" validate:"gte=0"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,min=15,max=480"`
	PetSize         string `json:"petSize" validate:"required,petsize"`
}

// ToDomainService конвертирует request в domain модель
func (r *ServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		PetSize:         domain.PetSize(r.PetSize),
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           int64     `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	PetSize         string    `json:"petSize"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID.String(),
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		PetSize:         string(s.PetSize),
		CreatedAt:       s.CreatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, svc := range services {
		if svcResp := FromDomainService(svc); svcResp != nil {
			resp.Services = append(resp.Services, *svcResp)
		}
	}
	return resp
}
