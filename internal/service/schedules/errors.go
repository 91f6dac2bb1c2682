package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда правило расписания не найдено
	ErrScheduleNotFound = errors.New("schedule rule not found")

	// ErrScheduleAlreadyExists возвращается, когда на пару (площадка, день)
	// правило уже существует
	ErrScheduleAlreadyExists = errors.New("schedule rule already exists")

	// ErrCourtNotFound возвращается, когда площадка не найдена
	ErrCourtNotFound = errors.New("court not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
