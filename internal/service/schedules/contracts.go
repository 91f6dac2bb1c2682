package schedules

import (
	"context"

	"github.com/canchub/court-booking-service/internal/domain"
	"github.com/canchub/court-booking-service/internal/integrations/venueservice"
)

// ScheduleRepository интерфейс репозитория правил расписания
type ScheduleRepository interface {
	Create(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleRule, error)
	GetByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) (*domain.ScheduleRule, error)
	ListByCourt(ctx context.Context, courtID int64) ([]*domain.ScheduleRule, error)
	Update(ctx context.Context, rule *domain.ScheduleRule) error
	Delete(ctx context.Context, id int64) error
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetCourtOwner(ctx context.Context, courtID int64) (*venueservice.Court, *venueservice.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
