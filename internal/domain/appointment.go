package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid returns true for one of the known statuses
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Appointment represents a grooming appointment.
// Service data is denormalized at booking time so later catalog edits do not change history.
type Appointment struct {
	ID              uuid.UUID
	PetName         string
	PetType         PetSize // размер питомца выбранной услуги
	ServiceName     string
	DurationMinutes int
	Price           int64
	Date            time.Time // только дата, время 00:00
	StartTime       types.TimeString
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	Status          AppointmentStatus
	CreatedAt       time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeConfirmed returns true if an admin can confirm the appointment
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// StartMinutes returns the start as minutes since midnight
func (a *Appointment) StartMinutes() int {
	return a.StartTime.Minutes()
}

// EndMinutes returns the end as minutes since midnight
func (a *Appointment) EndMinutes() int {
	return a.StartTime.Minutes() + a.DurationMinutes
}

// StartsAt returns the start instant of the appointment in the business location
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return a.StartTime.OnDate(a.Date, loc)
}

// Overlaps returns true if [start, start+duration) intersects the appointment interval.
// Adjacent intervals do not overlap.
func (a *Appointment) Overlaps(startMinutes, durationMinutes int) bool {
	return a.StartMinutes() < startMinutes+durationMinutes && a.EndMinutes() > startMinutes
}

// AppointmentsFilter фильтр выборки записей
type AppointmentsFilter struct {
	Date            *time.Time // конкретный день (опционально)
	ClientEmail     *string    // email клиента (опционально, уже нормализованный)
	IncludeInactive bool       // включать отменённые
	NewestFirst     bool       // сортировка по дате/времени по убыванию
}

// NormalizeEmail приводит email клиента к виду, в котором он хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
