package domain

// Default booking rules
const (
	DefaultSlotStepMinutes       = 15
	DefaultBookingCutoffMinutes  = 45 // запись на сегодня закрывается за 45 минут
	DefaultCancellationLeadHours = 3
)

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNameLength             = 100
	MaxDescriptionLength      = 1000
	MaxReasonLength           = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Change types emitted by the appointments trigger
const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
	ChangeDelete = "DELETE"
)
