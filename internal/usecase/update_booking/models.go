package update_booking

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID     int64     // ID бронирования
	ActorID       int64     // ID пользователя, выполняющего перенос
	StartDatetime time.Time // Новое начало окна
	EndDatetime   time.Time // Новый конец окна
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID            int64
	UserID        int64
	CourtID       int64
	StartDatetime time.Time
	EndDatetime   time.Time
	Status        string
	PriceTotal    float64
	ICSUID        string
	ICSSequence   int

	CreatedAt time.Time
	UpdatedAt time.Time
}
