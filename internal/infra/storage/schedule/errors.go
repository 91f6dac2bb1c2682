package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда правило расписания не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule rule not found")

	// ErrScheduleExists возвращается при нарушении уникальности (court_id, weekday)
	ErrScheduleExists = errors.New("schedule.repository: schedule rule already exists for court and weekday")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
