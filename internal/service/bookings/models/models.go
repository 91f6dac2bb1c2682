package models

import (
	"errors"
	"time"

	"github.com/canchub/court-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID            int64  `json:"actorId"`
	CancellationReason string `json:"cancellationReason"`
}

// ConfirmBookingRequest запрос на подтверждение бронирования владельцем клуба
type ConfirmBookingRequest struct {
	ActorID int64 `json:"actorId"`
}

// DeclineBookingRequest запрос на отклонение бронирования владельцем клуба
type DeclineBookingRequest struct {
	ActorID int64 `json:"actorId"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64      `json:"userId"`
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
	Status *string    `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserBookingsRequest) ToDomainFilter() (domain.UserBookingsFilter, error) {
	filter := domain.UserBookingsFilter{
		UserID: r.UserID,
		From:   r.From,
		To:     r.To,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetCourtBookingsRequest запрос на получение бронирований площадки
// Доступен только владельцу клуба
type GetCourtBookingsRequest struct {
	CourtID      int64      `json:"courtId"`
	ActorID      int64      `json:"actorId"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
	Status       *string    `json:"status,omitempty"`
	OnlyBlocking bool       `json:"onlyBlocking,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCourtBookingsRequest) ToDomainFilter() (domain.CourtBookingsFilter, error) {
	filter := domain.CourtBookingsFilter{
		CourtID:      r.CourtID,
		From:         r.From,
		To:           r.To,
		OnlyBlocking: r.OnlyBlocking,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetOwnerBookingsRequest запрос на получение бронирований всех площадок владельца
type GetOwnerBookingsRequest struct {
	OwnerID int64      `json:"ownerId"`
	From    *time.Time `json:"from,omitempty"`
	To      *time.Time `json:"to,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	CourtID       int64     `json:"courtId"`
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
	Status        string    `json:"status"`
	PriceTotal    float64   `json:"priceTotal"`
	ICSUID        string    `json:"icsUid"`
	ICSSequence   int       `json:"icsSequence"`

	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		CourtID:            b.CourtID,
		StartDatetime:      b.StartDatetime,
		EndDatetime:        b.EndDatetime,
		Status:             string(b.Status),
		PriceTotal:         b.PriceTotal,
		ICSUID:             b.ICSUID,
		ICSSequence:        b.ICSSequence,
		ExpiresAt:          b.ExpiresAt,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status, ok := domain.ParseBookingStatus(s)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}
