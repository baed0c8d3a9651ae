package realtime

import (
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings/models"
)

// Event DTO изменения записи для SSE и Kafka
type Event struct {
	Type           string                      `json:"type"`
	AppointmentID  string                      `json:"appointmentId"`
	Appointment    *models.AppointmentResponse `json:"appointment,omitempty"`
	PreviousStatus string                      `json:"previousStatus,omitempty"`
	Notice         string                      `json:"notice,omitempty"`
	OccurredAt     time.Time                   `json:"occurredAt"`
}

// NewEvent собирает DTO из изменения строки
func NewEvent(change *domain.AppointmentChange, notice string, at time.Time) Event {
	event := Event{
		Type:          change.Type,
		AppointmentID: change.AppointmentID().String(),
		Notice:        notice,
		OccurredAt:    at,
	}
	if cur := change.Current(); cur != nil {
		event.Appointment = models.FromDomainAppointment(cur)
	}
	if change.Type == domain.ChangeUpdate && change.Old != nil {
		event.PreviousStatus = string(change.Old.Status)
	}
	return event
}
