package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

// Request модель запроса на создание записи (шаг 3 мастера)
type Request struct {
	ServiceID   uuid.UUID        // выбранная услуга
	PetName     string           // кличка питомца
	Date        time.Time        // дата записи (без времени)
	StartTime   types.TimeString // время начала слота, например "10:00"
	ClientName  string
	ClientEmail string
	ClientPhone string
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
