package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := validateName("petName", req.PetName); err != nil {
		return err
	}

	if err := validateName("clientName", req.ClientName); err != nil {
		return err
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	email := domain.NormalizeEmail(req.ClientEmail)
	if email == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid clientEmail: %v", ErrInvalidInput, err)
	}

	return nil
}

func validateName(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > domain.MaxNameLength {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, domain.MaxNameLength)
	}
	return nil
}
