package bookings

import (
	"context"
	"time"

	"github.com/canchub/court-booking-service/internal/domain"
	"github.com/canchub/court-booking-service/internal/integrations/userservice"
	"github.com/canchub/court-booking-service/internal/integrations/venueservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	ListByCourt(ctx context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error)
	ListByCourtIDs(ctx context.Context, courtIDs []int64, from, to *time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking) error
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetCourt(ctx context.Context, courtID int64) (*venueservice.Court, error)
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
	GetCourtOwner(ctx context.Context, courtID int64) (*venueservice.Court, *venueservice.Venue, error)
	ListCourtsByOwner(ctx context.Context, ownerUserID int64) ([]venueservice.Court, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
// Подменяется в тестах
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
