package create_booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/PawsBubbles-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

// CreateBookingRequest HTTP модель шага 3 мастера записи
type CreateBookingRequest struct {
	ServiceID   string `json:"serviceId" validate:"required,uuid"`
	PetName     string `json:"petName" validate:"required,max=100"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"` // "2026-10-20"
	StartTime   string `json:"startTime" validate:"required,hhmm"`           // "10:00"
	ClientName  string `json:"clientName" validate:"required,max=100"`
	ClientEmail string `json:"clientEmail" validate:"required,email,max=255"`
	ClientPhone string `json:"clientPhone" validate:"required,max=30"`
}

// Normalize убирает пробелы по краям строковых полей, вызывается до валидации
func (r *CreateBookingRequest) Normalize() {
	r.ServiceID = strings.TrimSpace(r.ServiceID)
	r.PetName = strings.TrimSpace(r.PetName)
	r.Date = strings.TrimSpace(r.Date)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.ClientEmail = strings.TrimSpace(r.ClientEmail)
	r.ClientPhone = strings.TrimSpace(r.ClientPhone)
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(r.Date), loc)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(strings.TrimSpace(r.StartTime))
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:   serviceID,
		PetName:     r.PetName,
		Date:        date,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.AppointmentResponse {
	return models.FromDomainAppointment(resp.Appointment)
}
