package decline_booking

import (
	"context"

	"github.com/canchub/court-booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	Decline(ctx context.Context, bookingID int64, req *models.DeclineBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
