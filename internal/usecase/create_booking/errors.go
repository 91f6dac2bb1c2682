package create_booking

import "errors"

var (
	// ErrCourtNotFound возвращается, когда площадка не найдена
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrNoSchedule возвращается, когда на этот день недели у площадки нет расписания
	ErrNoSchedule = errors.New("create_booking: court has no schedule for this weekday")

	// ErrInvalidWindow возвращается, когда окно нарушает правила расписания
	// (вне рабочих часов, не кратно слоту, не выровнено по сетке и т.д.)
	ErrInvalidWindow = errors.New("create_booking: invalid booking window")

	// ErrWindowInPast возвращается, когда начало окна не в будущем
	ErrWindowInPast = errors.New("create_booking: booking must start in the future")

	// ErrWindowTaken возвращается, когда окно пересекается с активным бронированием
	ErrWindowTaken = errors.New("create_booking: window overlaps an active booking")

	// ErrPricingGap возвращается, когда часть окна не покрыта ценовыми правилами
	ErrPricingGap = errors.New("create_booking: window is not fully covered by price rules")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
