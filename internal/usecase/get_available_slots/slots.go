package get_available_slots

import (
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

// Rules параметры сетки слотов
type Rules struct {
	StepMinutes   int // шаг сетки, 15
	CutoffMinutes int // на сегодня нельзя записаться ближе чем за CutoffMinutes, 45
}

// DefaultRules правила салона по умолчанию
func DefaultRules() Rules {
	return Rules{
		StepMinutes:   domain.DefaultSlotStepMinutes,
		CutoffMinutes: domain.DefaultBookingCutoffMinutes,
	}
}

// CalculateSlots строит сетку слотов на день для услуги длительностью durationMinutes.
//
// Слоты идут от открытия с шагом rules.StepMinutes, пока начало раньше закрытия.
// Слот, который заканчивается позже закрытия, пропускается.
// Слот недоступен, если пересекается с активной записью, или если дата сегодняшняя
// и начало не позже now + rules.CutoffMinutes. Недоступные слоты остаются в списке.
//
// Закрытый день (нет расписания, выходной по неделе, нерабочая дата) и прошедшая дата дают пустой список.
func CalculateSlots(day *domain.DaySchedule, durationMinutes int, now time.Time, rules Rules) []domain.Slot {
	if day == nil || day.IsClosed() || durationMinutes <= 0 || rules.StepMinutes <= 0 {
		return []domain.Slot{}
	}

	if isDateInPast(day.Date, now) {
		return []domain.Slot{}
	}

	openMinutes := day.Hours.OpenTime.Minutes()
	closeMinutes := day.Hours.CloseTime.Minutes()

	today := isSameDay(day.Date, now)
	cutoff := now.Hour()*60 + now.Minute() + rules.CutoffMinutes

	slots := make([]domain.Slot, 0, (closeMinutes-openMinutes)/rules.StepMinutes+1)

	for start := openMinutes; start < closeMinutes; start += rules.StepMinutes {
		if start+durationMinutes > closeMinutes {
			continue
		}

		startTime, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			break
		}

		available := !hasOverlap(start, durationMinutes, day.Appointments)
		if today && start <= cutoff {
			available = false
		}

		slots = append(slots, domain.Slot{
			StartTime:   startTime,
			IsAvailable: available,
		})
	}

	return slots
}

// MinBookingDate первая дата, на которую ещё можно записаться:
// сегодня, если салон сегодня открыт и до закрытия больше cutoff минут, иначе завтра
func MinBookingDate(today *domain.DaySchedule, now time.Time, rules Rules) time.Time {
	todayDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayDate.AddDate(0, 0, 1)

	if today == nil || today.IsClosed() {
		return tomorrow
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	if nowMinutes >= today.Hours.CloseTime.Minutes()-rules.CutoffMinutes {
		return tomorrow
	}

	return todayDate
}

// hasOverlap проверяет пересечение [start, start+duration) с активными записями.
// Граничащие интервалы (одна запись заканчивается там, где начинается слот) не пересекаются.
func hasOverlap(start, duration int, appointments []*domain.Appointment) bool {
	for _, apt := range appointments {
		if !apt.IsActive() {
			continue
		}
		if apt.Overlaps(start, duration) {
			return true
		}
	}
	return false
}

// weekdayIndex день недели в нумерации business_hours (0 = воскресенье)
func weekdayIndex(date time.Time) int {
	return int(date.Weekday())
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	dateOnly := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
