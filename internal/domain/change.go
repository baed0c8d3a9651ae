package domain

import "github.com/google/uuid"

// AppointmentChange is a row-level change of the appointments table
type AppointmentChange struct {
	Type string // INSERT | UPDATE | DELETE
	Old  *Appointment
	New  *Appointment
}

// Current returns the row after the change, or the deleted row
func (c *AppointmentChange) Current() *Appointment {
	if c.New != nil {
		return c.New
	}
	return c.Old
}

// AppointmentID returns the id of the changed row
func (c *AppointmentChange) AppointmentID() uuid.UUID {
	if cur := c.Current(); cur != nil {
		return cur.ID
	}
	return uuid.Nil
}

// StatusChangedTo returns true if an update moved the row into the given status
func (c *AppointmentChange) StatusChangedTo(status AppointmentStatus) bool {
	if c.Type != ChangeUpdate || c.New == nil || c.New.Status != status {
		return false
	}
	return c.Old == nil || c.Old.Status != status
}
