package models

import (
	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

// Request модели

// UpdateBusinessHourRequest запрос на изменение часов работы дня недели
type UpdateBusinessHourRequest struct {
	OpenTime  string `json:"openTime" validate:"omitempty,hhmm"`
	CloseTime string `json:"closeTime" validate:"omitempty,hhmm"`
	IsClosed  bool   `json:"isClosed"`
}

// CreateClosedDayRequest запрос на закрытие даты
type CreateClosedDayRequest struct {
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// Response модели

// BusinessHourResponse часы работы дня недели
type BusinessHourResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsClosed  bool   `json:"isClosed"`
}

// BusinessHoursResponse недельное расписание
type BusinessHoursResponse struct {
	BusinessHours []BusinessHourResponse `json:"businessHours"`
}

// ClosedDayResponse нерабочий день
type ClosedDayResponse struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// ClosedDaysResponse список нерабочих дней
type ClosedDaysResponse struct {
	ClosedDays []ClosedDayResponse `json:"closedDays"`
}

// Методы конвертации

// FromDomainBusinessHour конвертирует domain модель в DTO
func FromDomainBusinessHour(h *domain.BusinessHour) *BusinessHourResponse {
	if h == nil {
		return nil
	}
	return &BusinessHourResponse{
		ID:        h.ID,
		DayOfWeek: h.DayOfWeek,
		OpenTime:  h.OpenTime.String(),
		CloseTime: h.CloseTime.String(),
		IsClosed:  h.IsClosed,
	}
}

// FromDomainBusinessHours конвертирует список domain моделей в DTO
func FromDomainBusinessHours(hours []*domain.BusinessHour) *BusinessHoursResponse {
	resp := &BusinessHoursResponse{
		BusinessHours: make([]BusinessHourResponse, 0, len(hours)),
	}
	for _, h := range hours {
		if hResp := FromDomainBusinessHour(h); hResp != nil {
			resp.BusinessHours = append(resp.BusinessHours, *hResp)
		}
	}
	return resp
}

// FromDomainClosedDay конвертирует domain модель в DTO
func FromDomainClosedDay(d *domain.ClosedDay) *ClosedDayResponse {
	if d == nil {
		return nil
	}
	return &ClosedDayResponse{
		ID:     d.ID.String(),
		Date:   d.Date.Format(domain.DateFormat),
		Reason: d.Reason,
	}
}

// FromDomainClosedDays конвертирует список domain моделей в DTO
func FromDomainClosedDays(days []*domain.ClosedDay) *ClosedDaysResponse {
	resp := &ClosedDaysResponse{
		ClosedDays: make([]ClosedDayResponse, 0, len(days)),
	}
	for _, d := range days {
		if dResp := FromDomainClosedDay(d); dResp != nil {
			resp.ClosedDays = append(resp.ClosedDays, *dResp)
		}
	}
	return resp
}
