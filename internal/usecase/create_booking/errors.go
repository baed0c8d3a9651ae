package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrDayClosed возвращается, когда салон закрыт в указанную дату
	ErrDayClosed = errors.New("create_booking: business is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом сетки
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят или слишком близко к текущему времени
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
