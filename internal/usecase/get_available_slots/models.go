package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ServiceID uuid.UUID // услуга определяет длительность
	Date      time.Time // дата (без времени)
}

// Response модель ответа со слотами
type Response struct {
	Date            time.Time
	ServiceID       uuid.UUID
	ServiceName     string
	DurationMinutes int
	IsClosed        bool // день закрыт целиком
	Slots           []domain.Slot
}

// MinDateResponse модель ответа с минимальной датой записи
type MinDateResponse struct {
	Date       time.Time
	TodayOpen  bool // на сегодня ещё можно записаться
	ComputedAt time.Time
}
