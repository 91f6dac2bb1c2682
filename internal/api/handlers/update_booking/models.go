package update_booking

import (
	"time"

	updateBooking "github.com/canchub/court-booking-service/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	ActorID       int64  `json:"actorId"`
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
	ICSSequence   int     `json:"icsSequence"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) (*updateBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartDatetime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndDatetime)
	if err != nil {
		return nil, err
	}

	return &updateBooking.Request{
		BookingID:     bookingID,
		ActorID:       r.ActorID,
		StartDatetime: start,
		EndDatetime:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		CourtID:       resp.CourtID,
		StartDatetime: resp.StartDatetime.Format(time.RFC3339),
		EndDatetime:   resp.EndDatetime.Format(time.RFC3339),
		Status:        resp.Status,
		PriceTotal:    resp.PriceTotal,
		ICSUID:        resp.ICSUID,
		ICSSequence:   resp.ICSSequence,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
