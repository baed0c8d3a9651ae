package models

import (
	"errors"
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос клиента на отмену своей записи
type CancelBookingRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateStatusRequest запрос администратора на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// DeleteBookingRequest запрос администратора на удаление записи
type DeleteBookingRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              string    `json:"id"`
	PetName         string    `json:"petName"`
	PetType         string    `json:"petType"`
	ServiceName     string    `json:"serviceName"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           int64     `json:"price"`
	AppointmentDate string    `json:"appointmentDate"` // "2026-10-20"
	StartTime       string    `json:"startTime"`       // "10:00"
	ClientName      string    `json:"clientName"`
	ClientEmail     string    `json:"clientEmail"`
	ClientPhone     string    `json:"clientPhone"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`

	// Для страницы "мои записи": можно ли ещё отменить
	CanCancel *bool `json:"canCancel,omitempty"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// DeleteBookingResponse ответ на удаление записи администратором
type DeleteBookingResponse struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID.String(),
		PetName:         a.PetName,
		PetType:         string(a.PetType),
		ServiceName:     a.ServiceName,
		DurationMinutes: a.DurationMinutes,
		Price:           a.Price,
		AppointmentDate: a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		ClientName:      a.ClientName,
		ClientEmail:     a.ClientEmail,
		ClientPhone:     a.ClientPhone,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, apt := range appointments {
		if aptResp := FromDomainAppointment(apt); aptResp != nil {
			resp.Appointments = append(resp.Appointments, *aptResp)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
