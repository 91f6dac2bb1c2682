package prices

import (
	"context"

	"github.com/canchub/court-booking-service/internal/domain"
	"github.com/canchub/court-booking-service/internal/integrations/venueservice"
)

// PriceRepository интерфейс репозитория правил цен
type PriceRepository interface {
	Create(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error)
	GetByID(ctx context.Context, id int64) (*domain.PriceRule, error)
	ListByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) ([]*domain.PriceRule, error)
	ListByCourt(ctx context.Context, courtID int64) ([]*domain.PriceRule, error)
	Update(ctx context.Context, rule *domain.PriceRule) error
	Delete(ctx context.Context, id int64) error
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetCourtOwner(ctx context.Context, courtID int64) (*venueservice.Court, *venueservice.Venue, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
