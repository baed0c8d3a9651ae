package schedule

import "errors"

var (
	// ErrBusinessHourNotFound возвращается, когда для дня недели нет расписания
	ErrBusinessHourNotFound = errors.New("schedule.repository: business hour not found")

	// ErrClosedDayNotFound возвращается, когда нерабочий день не найден
	ErrClosedDayNotFound = errors.New("schedule.repository: closed day not found")

	// ErrDuplicateClosedDay возвращается при попытке закрыть уже закрытую дату
	ErrDuplicateClosedDay = errors.New("schedule.repository: closed day already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
