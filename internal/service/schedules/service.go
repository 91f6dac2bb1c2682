package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/canchub/court-booking-service/internal/domain"
	scheduleRepo "github.com/canchub/court-booking-service/internal/infra/storage/schedule"
	venueClient "github.com/canchub/court-booking-service/internal/integrations/venueservice"
	"github.com/canchub/court-booking-service/internal/service/schedules/models"
	"github.com/canchub/court-booking-service/pkg/types"
)

// Service сервис для управления расписаниями площадок
type Service struct {
	scheduleRepo ScheduleRepository
	venueClient  VenueServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		venueClient:  venueClient,
		logger:       logger,
	}
}

// Create создает правило расписания
// Доступно только владельцу клуба площадки
// На пару (площадка, день недели) допускается одно правило
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: creating schedule for court=%d, weekday=%d by actor=%d",
		req.CourtID, req.Weekday, req.ActorID)

	if err := s.checkCourtOwner(ctx, req.CourtID, req.ActorID); err != nil {
		return nil, err
	}

	rule, err := s.buildRule(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for court=%d: %v", req.CourtID, err)
		return nil, err
	}

	created, err := s.scheduleRepo.Create(ctx, rule)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleExists) {
			s.logger.Warn("Create: schedule already exists for court=%d, weekday=%d", req.CourtID, req.Weekday)
			return nil, ErrScheduleAlreadyExists
		}
		s.logger.Error("Create: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created schedule id=%d for court=%d", created.ID, req.CourtID)
	return models.FromDomainSchedule(created), nil
}

// ListByCourt получает правила расписания площадки
// Публичный метод: расписание видно всем для страницы доступности
func (s *Service) ListByCourt(ctx context.Context, courtID int64) (*models.ScheduleListResponse, error) {
	rules, err := s.scheduleRepo.ListByCourt(ctx, courtID)
	if err != nil {
		s.logger.Error("ListByCourt: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: ListByCourt - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(rules), nil
}

// Update обновляет правило расписания
// Доступно только владельцу клуба площадки
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule id=%d by actor=%d", id, req.ActorID)

	rule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Update: schedule id=%d not found", id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Update: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.checkCourtOwner(ctx, rule.CourtID, req.ActorID); err != nil {
		return nil, err
	}

	if err := applyUpdate(rule, req); err != nil {
		s.logger.Warn("Update: validation failed for schedule id=%d: %v", id, err)
		return nil, err
	}

	if err := validateRule(rule); err != nil {
		s.logger.Warn("Update: validation failed for schedule id=%d: %v", id, err)
		return nil, err
	}

	if err := s.scheduleRepo.Update(ctx, rule); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleExists) {
			s.logger.Warn("Update: schedule already exists for court=%d, weekday=%d", rule.CourtID, rule.Weekday)
			return nil, ErrScheduleAlreadyExists
		}
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Update: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated schedule id=%d", id)
	return models.FromDomainSchedule(rule), nil
}

// Delete удаляет правило расписания
// Доступно только владельцу клуба площадки
func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	s.logger.Info("Delete: deleting schedule id=%d by actor=%d", id, actorID)

	rule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Delete: schedule id=%d not found", id)
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkCourtOwner(ctx, rule.CourtID, actorID); err != nil {
		return err
	}

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted schedule id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) buildRule(req *models.CreateScheduleRequest) (*domain.ScheduleRule, error) {
	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time", ErrInvalidInput)
	}

	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time", ErrInvalidInput)
	}

	rule := &domain.ScheduleRule{
		CourtID:     req.CourtID,
		Weekday:     req.Weekday,
		OpenTime:    openTime,
		CloseTime:   closeTime,
		SlotMinutes: req.SlotMinutes,
	}

	if err := validateRule(rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func applyUpdate(rule *domain.ScheduleRule, req *models.UpdateScheduleRequest) error {
	if req.Weekday != nil {
		rule.Weekday = *req.Weekday
	}
	if req.OpenTime != nil {
		openTime, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return fmt.Errorf("%w: invalid open time", ErrInvalidInput)
		}
		rule.OpenTime = openTime
	}
	if req.CloseTime != nil {
		closeTime, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return fmt.Errorf("%w: invalid close time", ErrInvalidInput)
		}
		rule.CloseTime = closeTime
	}
	if req.SlotMinutes != nil {
		rule.SlotMinutes = *req.SlotMinutes
	}
	return nil
}

func validateRule(rule *domain.ScheduleRule) error {
	if rule.Weekday < domain.MinWeekday || rule.Weekday > domain.MaxWeekday {
		return fmt.Errorf("%w: weekday must be between %d and %d", ErrInvalidInput, domain.MinWeekday, domain.MaxWeekday)
	}
	if !rule.OpenTime.IsBefore(rule.CloseTime) {
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}
	if rule.SlotMinutes < domain.MinSlotMinutes || rule.SlotMinutes > domain.MaxSlotMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes", ErrInvalidInput, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}
	if (rule.CloseTime.Minutes()-rule.OpenTime.Minutes())%rule.SlotMinutes != 0 {
		return fmt.Errorf("%w: working hours must be a whole number of slots", ErrInvalidInput)
	}
	return nil
}

func (s *Service) checkCourtOwner(ctx context.Context, courtID int64, actorID int64) error {
	_, venue, err := s.venueClient.GetCourtOwner(ctx, courtID)
	if err != nil {
		if errors.Is(err, venueClient.ErrCourtNotFound) || errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("checkCourtOwner: court id=%d not found", courtID)
			return ErrCourtNotFound
		}
		s.logger.Error("checkCourtOwner: failed to resolve court id=%d: %v", courtID, err)
		return fmt.Errorf("%w: checkCourtOwner - failed to resolve court: %v", ErrInternal, err)
	}

	if venue.OwnerUserID != actorID {
		s.logger.Warn("checkCourtOwner: actor=%d is not the owner of venue=%d", actorID, venue.ID)
		return ErrAccessDenied
	}

	return nil
}
