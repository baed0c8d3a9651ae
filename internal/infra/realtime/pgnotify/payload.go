package pgnotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

// ErrBadPayload возвращается, если уведомление не удалось разобрать
var ErrBadPayload = errors.New("pgnotify: bad payload")

// payload тело pg_notify из триггера appointments_notify
type payload struct {
	Type string          `json:"type"`
	Old  *appointmentRow `json:"old"`
	New  *appointmentRow `json:"new"`
}

// appointmentRow строка appointments в виде row_to_json
type appointmentRow struct {
	ID              uuid.UUID `json:"id"`
	PetName         string    `json:"pet_name"`
	PetType         string    `json:"pet_type"`
	ServiceName     string    `json:"service_name"`
	Duration        int       `json:"duration"`
	Price           int64     `json:"price"`
	AppointmentDate string    `json:"appointment_date"`
	StartTime       string    `json:"start_time"`
	ClientName      string    `json:"client_name"`
	ClientEmail     string    `json:"client_email"`
	ClientPhone     string    `json:"client_phone"`
	Status          string    `json:"status"`
	CreatedAt       string    `json:"created_at"`
}

// Decode разбирает уведомление в изменение записи
func Decode(raw string, loc *time.Location) (*domain.AppointmentChange, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	switch p.Type {
	case domain.ChangeInsert, domain.ChangeUpdate, domain.ChangeDelete:
	default:
		return nil, fmt.Errorf("%w: unknown change type %q", ErrBadPayload, p.Type)
	}

	change := &domain.AppointmentChange{Type: p.Type}

	var err error
	if p.Old != nil {
		if change.Old, err = p.Old.toDomain(loc); err != nil {
			return nil, err
		}
	}
	if p.New != nil {
		if change.New, err = p.New.toDomain(loc); err != nil {
			return nil, err
		}
	}
	if change.Current() == nil {
		return nil, fmt.Errorf("%w: %s without row data", ErrBadPayload, p.Type)
	}

	return change, nil
}

func (r *appointmentRow) toDomain(loc *time.Location) (*domain.Appointment, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.AppointmentDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment_date: %v", ErrBadPayload, err)
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %v", ErrBadPayload, err)
	}

	apt := &domain.Appointment{
		ID:              r.ID,
		PetName:         r.PetName,
		PetType:         domain.PetSize(r.PetType),
		ServiceName:     r.ServiceName,
		DurationMinutes: r.Duration,
		Price:           r.Price,
		Date:            date,
		StartTime:       start,
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
		ClientPhone:     r.ClientPhone,
		Status:          domain.AppointmentStatus(r.Status),
	}

	if r.CreatedAt != "" {
		// row_to_json отдаёт timestamptz с двоеточием в смещении, но без него для +00
		if created, err := time.Parse(time.RFC3339Nano, normalizeOffset(r.CreatedAt)); err == nil {
			apt.CreatedAt = created
		}
	}

	return apt, nil
}

// normalizeOffset превращает "+00" и "-05" в "+00:00" и "-05:00"
func normalizeOffset(ts string) string {
	if i := strings.LastIndexAny(ts, "+-"); i > 0 && len(ts)-i == 3 && strings.Contains(ts[:i], "T") {
		return ts + ":00"
	}
	return ts
}
