package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда актор не владеет бронированием
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrNotReschedulable возвращается, когда бронирование нельзя перенести
	// (терминальный статус или уже началось)
	ErrNotReschedulable = errors.New("update_booking: booking cannot be rescheduled")

	// ErrNoSchedule возвращается, когда на новый день недели у площадки нет расписания
	ErrNoSchedule = errors.New("update_booking: court has no schedule for this weekday")

	// ErrInvalidWindow возвращается, когда новое окно нарушает правила расписания
	ErrInvalidWindow = errors.New("update_booking: invalid booking window")

	// ErrWindowInPast возвращается, когда новое окно не в будущем
	ErrWindowInPast = errors.New("update_booking: booking must start in the future")

	// ErrWindowTaken возвращается, когда новое окно пересекается с активным бронированием
	ErrWindowTaken = errors.New("update_booking: window overlaps an active booking")

	// ErrPricingGap возвращается, когда часть нового окна не покрыта ценовыми правилами
	ErrPricingGap = errors.New("update_booking: window is not fully covered by price rules")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
