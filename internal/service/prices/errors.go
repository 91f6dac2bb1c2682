package prices

import "errors"

var (
	// ErrPriceRuleNotFound возвращается, когда правило цены не найдено
	ErrPriceRuleNotFound = errors.New("price rule not found")

	// ErrPriceRuleOverlap возвращается, когда интервал нового правила
	// пересекается с существующим на том же дне недели
	ErrPriceRuleOverlap = errors.New("price rule overlaps an existing rule")

	// ErrCourtNotFound возвращается, когда площадка не найдена
	ErrCourtNotFound = errors.New("court not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
