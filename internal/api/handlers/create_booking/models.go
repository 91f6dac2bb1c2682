package create_booking

import (
	"time"

	createBooking "github.com/canchub/court-booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID        int64  `json:"userId"`
	CourtID       int64  `json:"courtId"`
	StartDatetime string `json:"startDatetime"` // RFC 3339
	EndDatetime   string `json:"endDatetime"`   // RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	CourtID       int64   `json:"courtId"`
	StartDatetime string  `json:"startDatetime"`
	EndDatetime   string  `json:"endDatetime"`
	Status        string  `json:"status"`
	PriceTotal    float64 `json:"priceTotal"`
	ICSUID        string  `json:"icsUid"`
	ExpiresAt     *string `json:"expiresAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartDatetime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndDatetime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:        r.UserID,
		CourtID:       r.CourtID,
		StartDatetime: start,
		EndDatetime:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		CourtID:       resp.CourtID,
		StartDatetime: resp.StartDatetime.Format(time.RFC3339),
		EndDatetime:   resp.EndDatetime.Format(time.RFC3339),
		Status:        resp.Status,
		PriceTotal:    resp.PriceTotal,
		ICSUID:        resp.ICSUID,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.ExpiresAt != nil {
		expiresAt := resp.ExpiresAt.Format(time.RFC3339)
		out.ExpiresAt = &expiresAt
	}

	return out
}
