package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64     // ID пользователя
	CourtID       int64     // ID площадки
	StartDatetime time.Time // Начало окна
	EndDatetime   time.Time // Конец окна
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64      // ID созданного бронирования
	UserID        int64      // ID пользователя
	CourtID       int64      // ID площадки
	StartDatetime time.Time  // Начало окна
	EndDatetime   time.Time  // Конец окна
	Status        string     // Статус бронирования
	PriceTotal    float64    // Итоговая цена
	ICSUID        string     // UID события для календарных клиентов
	ExpiresAt     *time.Time // Дедлайн подтверждения для PENDING

	CreatedAt time.Time
	UpdatedAt time.Time
}
