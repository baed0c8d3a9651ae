package get_available_slots

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/PawsBubbles-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime   string `json:"startTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// AvailableSlotsResponse HTTP модель ответа со слотами
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	ServiceID       string         `json:"serviceId"`
	ServiceName     string         `json:"serviceName"`
	DurationMinutes int            `json:"durationMinutes"`
	IsClosed        bool           `json:"isClosed"`
	AvailableCount  int            `json:"availableCount"`
	Slots           []SlotResponse `json:"slots"`
}

// MinDateResponse HTTP модель минимальной даты записи
type MinDateResponse struct {
	MinDate   string `json:"minDate"`
	TodayOpen bool   `json:"todayOpen"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case (дата в часовом поясе салона)
func ToUseCaseRequest(serviceID uuid.UUID, date string, loc *time.Location) (*getAvailableSlots.Request, error) {
	parsed, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(date), loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      parsed,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:   s.StartTime.String(),
			IsAvailable: s.IsAvailable,
		})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID.String(),
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		IsClosed:        resp.IsClosed,
		AvailableCount:  domain.CountAvailable(resp.Slots),
		Slots:           slots,
	}
}

// FromMinDateResponse конвертирует минимальную дату в HTTP response
func FromMinDateResponse(resp *getAvailableSlots.MinDateResponse) *MinDateResponse {
	return &MinDateResponse{
		MinDate:   resp.Date.Format(domain.DateFormat),
		TodayOpen: resp.TodayOpen,
	}
}
