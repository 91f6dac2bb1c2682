package manage_prices

import (
	"context"

	"github.com/canchub/court-booking-service/internal/service/prices/models"
)

// PricesService интерфейс сервиса правил цен
type PricesService interface {
	Create(ctx context.Context, req *models.CreatePriceRuleRequest) (*models.PriceRuleResponse, error)
	ListByCourt(ctx context.Context, courtID int64) (*models.PriceRuleListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdatePriceRuleRequest) (*models.PriceRuleResponse, error)
	Delete(ctx context.Context, id int64, actorID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
