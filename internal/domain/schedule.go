package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

// BusinessHour represents the opening window for one weekday.
// DayOfWeek follows time.Weekday: 0 = Sunday ... 6 = Saturday.
type BusinessHour struct {
	ID        int64
	DayOfWeek int
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsClosed  bool
}

// IsOpen returns true if the business accepts appointments on this weekday
func (h *BusinessHour) IsOpen() bool {
	return h != nil && !h.IsClosed && !h.OpenTime.IsZero() && !h.CloseTime.IsZero() &&
		h.OpenTime.IsBefore(h.CloseTime)
}

// Weekday returns the weekday of the row
func (h *BusinessHour) Weekday() time.Weekday {
	return time.Weekday(h.DayOfWeek)
}

// ClosedDay represents an ad hoc full-day closure overriding the weekly schedule
type ClosedDay struct {
	ID     uuid.UUID
	Date   time.Time
	Reason *string
}

// DaySchedule всё, что нужно для расчёта слотов на конкретную дату
type DaySchedule struct {
	Date         time.Time
	Hours        *BusinessHour // nil, если строки для дня недели нет
	ClosedDay    *ClosedDay    // nil, если дата не закрыта
	Appointments []*Appointment
}

// IsClosed returns true if no appointment can be placed on the date
func (d *DaySchedule) IsClosed() bool {
	return d.ClosedDay != nil || !d.Hours.IsOpen()
}
