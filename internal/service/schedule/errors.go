package schedule

import "errors"

var (
	// ErrClosedDayNotFound возвращается, когда нерабочий день не найден
	ErrClosedDayNotFound = errors.New("closed day not found")

	// ErrClosedDayExists возвращается при попытке закрыть уже закрытую дату
	ErrClosedDayExists = errors.New("closed day already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
