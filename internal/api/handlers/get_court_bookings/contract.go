package get_court_bookings

import (
	"context"

	"github.com/canchub/court-booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetCourtBookings(ctx context.Context, req *models.GetCourtBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
