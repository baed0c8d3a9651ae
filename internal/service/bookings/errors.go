package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда email не совпадает с email записи
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrTooLateToCancel возвращается, когда до начала записи осталось меньше допустимого
	ErrTooLateToCancel = errors.New("too late to cancel booking")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается, когда переход между статусами запрещён
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSlotTaken возвращается, когда восстановить запись нельзя: время уже занято
	ErrSlotTaken = errors.New("slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
