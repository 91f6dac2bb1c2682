package create_booking

import (
	"context"
	"time"

	"github.com/canchub/court-booking-service/internal/domain"
	"github.com/canchub/court-booking-service/internal/integrations/venueservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListBlockingOverlapping(ctx context.Context, courtID int64, w domain.Window, excludeID *int64) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория правил расписания
type ScheduleRepository interface {
	GetByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) (*domain.ScheduleRule, error)
}

// PriceRepository интерфейс репозитория правил цен
type PriceRepository interface {
	ListByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) ([]*domain.PriceRule, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetCourt(ctx context.Context, courtID int64) (*venueservice.Court, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
