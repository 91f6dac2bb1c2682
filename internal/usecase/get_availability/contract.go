package get_availability

import (
	"context"
	"time"

	"github.com/canchub/court-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByCourt(ctx context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория правил расписания
type ScheduleRepository interface {
	GetByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) (*domain.ScheduleRule, error)
}

// PriceRepository интерфейс репозитория правил цен
type PriceRepository interface {
	ListByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) ([]*domain.PriceRule, error)
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
