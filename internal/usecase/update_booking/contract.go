package update_booking

import (
	"context"
	"time"

	"github.com/canchub/court-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListBlockingOverlapping(ctx context.Context, courtID int64, w domain.Window, excludeID *int64) ([]*domain.Booking, error)
	UpdateWindow(ctx context.Context, id int64, w domain.Window, priceTotal float64) error
}

// ScheduleRepository интерфейс репозитория правил расписания
type ScheduleRepository interface {
	GetByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) (*domain.ScheduleRule, error)
}

// PriceRepository интерфейс репозитория правил цен
type PriceRepository interface {
	ListByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) ([]*domain.PriceRule, error)
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
