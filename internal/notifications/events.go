package notifications

import "time"

// Типы событий жизненного цикла бронирования
// Используются как routing key при публикации в exchange
const (
	EventBookingCreated     = "booking.created"
	EventBookingConfirmed   = "booking.confirmed"
	EventBookingDeclined    = "booking.declined"
	EventBookingCancelled   = "booking.cancelled"
	EventBookingExpired     = "booking.expired"
	EventBookingRescheduled = "booking.rescheduled"
)

// Contact контактные данные получателя уведомления
// Поля пустые, если UserService был недоступен
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BookingEvent событие изменения бронирования
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     int64     `json:"bookingId"`
	UserID        int64     `json:"userId"`
	CourtID       int64     `json:"courtId"`
	CourtName     string    `json:"courtName,omitempty"`
	VenueName     string    `json:"venueName,omitempty"`
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
	PriceTotal    float64   `json:"priceTotal"`
	OldStatus     string    `json:"oldStatus,omitempty"`
	NewStatus     string    `json:"newStatus"`
	UserContact   *Contact  `json:"userContact,omitempty"`
	OwnerContact  *Contact  `json:"ownerContact,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}
