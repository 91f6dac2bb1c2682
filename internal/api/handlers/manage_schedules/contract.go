package manage_schedules

import (
	"context"

	"github.com/canchub/court-booking-service/internal/service/schedules/models"
)

type SchedulesService interface {
	Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error)
	ListByCourt(ctx context.Context, courtID int64) (*models.ScheduleListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
	Delete(ctx context.Context, id int64, actorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
