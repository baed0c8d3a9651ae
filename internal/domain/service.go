package domain

import (
	"time"

	"github.com/google/uuid"
)

// PetSize is the pet-size category a service is priced for
type PetSize string

const (
	PetSizeSmall  PetSize = "Pequeño"
	PetSizeMedium PetSize = "Mediano"
	PetSizeLarge  PetSize = "Grande"
)

// PetSizes все допустимые размеры в порядке отображения
var PetSizes = []PetSize{PetSizeSmall, PetSizeMedium, PetSizeLarge}

// Valid returns true for one of the fixed labels
func (p PetSize) Valid() bool {
	for _, size := range PetSizes {
		if p == size {
			return true
		}
	}
	return false
}

// Service represents a grooming service from the catalog
type Service struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Price           int64 // целые песо
	DurationMinutes int
	PetSize         PetSize
	CreatedAt       time.Time
}
