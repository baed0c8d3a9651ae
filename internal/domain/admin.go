package domain

import (
	"time"

	"github.com/google/uuid"
)

// Admin represents a staff account allowed to use the dashboard
type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
