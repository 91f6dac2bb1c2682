package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending       BookingStatus = "PENDING"
	StatusConfirmed     BookingStatus = "CONFIRMED"
	StatusCancelled     BookingStatus = "CANCELLED"
	StatusCancelledLate BookingStatus = "CANCELLED_LATE"
	StatusExpired       BookingStatus = "EXPIRED"
	StatusDeclined      BookingStatus = "DECLINED"
)

// BlockingStatuses статусы, которые блокируют слот при проверке пересечений
// Единственное место в коде, где этот набор определён
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCancelledLate,
	StatusExpired,
	StatusDeclined,
}

// ParseBookingStatus валидирует и конвертирует строку в BookingStatus
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled,
		StatusCancelledLate, StatusExpired, StatusDeclined:
		return status, true
	}
	return "", false
}

// Booking represents a court booking
type Booking struct {
	ID            int64
	UserID        int64
	CourtID       int64
	StartDatetime time.Time
	EndDatetime   time.Time
	Status        BookingStatus
	PriceTotal    float64

	// Календарная идентификация для ICS-уведомлений
	ICSUID      string
	ICSSequence int

	ExpiresAt          *time.Time
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window окно бронирования [start, end)
func (b *Booking) Window() Window {
	return NewWindow(b.StartDatetime, b.EndDatetime)
}

// IsBlocking returns true if the booking counts toward overlap conflicts
func (b *Booking) IsBlocking() bool {
	return b.Status.IsBlocking()
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// IsBlocking returns true if the status counts toward overlap conflicts
func (s BookingStatus) IsBlocking() bool {
	for _, st := range BlockingStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status admits no further transitions
func (s BookingStatus) IsTerminal() bool {
	for _, st := range TerminalStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// CourtBookingsFilter фильтр для выборки бронирований площадки
type CourtBookingsFilter struct {
	CourtID      int64
	From         *time.Time // начало периода (опционально)
	To           *time.Time // конец периода (опционально)
	Status       *BookingStatus
	OnlyBlocking bool // только активные (PENDING/CONFIRMED) бронирования
}

// UserBookingsFilter фильтр для выборки бронирований пользователя
type UserBookingsFilter struct {
	UserID int64
	From   *time.Time
	To     *time.Time
	Status *BookingStatus
}
