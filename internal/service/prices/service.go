package prices

import (
	"context"
	"errors"
	"fmt"

	"github.com/canchub/court-booking-service/internal/domain"
	priceRepo "github.com/canchub/court-booking-service/internal/infra/storage/price"
	venueClient "github.com/canchub/court-booking-service/internal/integrations/venueservice"
	"github.com/canchub/court-booking-service/internal/service/prices/models"
	"github.com/canchub/court-booking-service/pkg/types"
)

// Service сервис для управления правилами цен площадок
type Service struct {
	priceRepo   PriceRepository
	venueClient VenueServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса цен
func NewService(
	priceRepo PriceRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		priceRepo:   priceRepo,
		venueClient: venueClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает правило цены
// Доступно только владельцу клуба площадки
// Пересечение с существующими правилами того же дня проверяется
// в транзакции: конкурентная вставка пересекающегося правила не пройдёт
func (s *Service) Create(ctx context.Context, req *models.CreatePriceRuleRequest) (*models.PriceRuleResponse, error) {
	s.logger.Info("Create: creating price rule for court=%d, weekday=%d by actor=%d",
		req.CourtID, req.Weekday, req.ActorID)

	if err := s.checkCourtOwner(ctx, req.CourtID, req.ActorID); err != nil {
		return nil, err
	}

	rule, err := buildRule(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for court=%d: %v", req.CourtID, err)
		return nil, err
	}

	var created *domain.PriceRule
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.checkOverlap(ctx, rule, nil); err != nil {
			return err
		}

		var repoErr error
		created, repoErr = s.priceRepo.Create(ctx, rule)
		return repoErr
	})

	if err != nil {
		if errors.Is(err, ErrPriceRuleOverlap) {
			s.logger.Warn("Create: price rule overlaps existing for court=%d, weekday=%d", req.CourtID, req.Weekday)
			return nil, err
		}
		s.logger.Error("Create: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created price rule id=%d for court=%d", created.ID, req.CourtID)
	return models.FromDomainPriceRule(created), nil
}

// ListByCourt получает правила цен площадки
// Публичный метод: цены видны всем для страницы доступности
func (s *Service) ListByCourt(ctx context.Context, courtID int64) (*models.PriceRuleListResponse, error) {
	rules, err := s.priceRepo.ListByCourt(ctx, courtID)
	if err != nil {
		s.logger.Error("ListByCourt: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: ListByCourt - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPriceRuleList(rules), nil
}

// Update обновляет правило цены
// Доступно только владельцу клуба площадки
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdatePriceRuleRequest) (*models.PriceRuleResponse, error) {
	s.logger.Info("Update: updating price rule id=%d by actor=%d", id, req.ActorID)

	rule, err := s.priceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, priceRepo.ErrPriceRuleNotFound) {
			s.logger.Warn("Update: price rule id=%d not found", id)
			return nil, ErrPriceRuleNotFound
		}
		s.logger.Error("Update: repository error for price rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.checkCourtOwner(ctx, rule.CourtID, req.ActorID); err != nil {
		return nil, err
	}

	if err := applyUpdate(rule, req); err != nil {
		s.logger.Warn("Update: validation failed for price rule id=%d: %v", id, err)
		return nil, err
	}

	if err := validateRule(rule); err != nil {
		s.logger.Warn("Update: validation failed for price rule id=%d: %v", id, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.checkOverlap(ctx, rule, &rule.ID); err != nil {
			return err
		}
		return s.priceRepo.Update(ctx, rule)
	})

	if err != nil {
		if errors.Is(err, ErrPriceRuleOverlap) {
			s.logger.Warn("Update: price rule id=%d overlaps existing", id)
			return nil, err
		}
		if errors.Is(err, priceRepo.ErrPriceRuleNotFound) {
			return nil, ErrPriceRuleNotFound
		}
		s.logger.Error("Update: repository error for price rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated price rule id=%d", id)
	return models.FromDomainPriceRule(rule), nil
}

// Delete удаляет правило цены
// Доступно только владельцу клуба площадки
func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	s.logger.Info("Delete: deleting price rule id=%d by actor=%d", id, actorID)

	rule, err := s.priceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, priceRepo.ErrPriceRuleNotFound) {
			s.logger.Warn("Delete: price rule id=%d not found", id)
			return ErrPriceRuleNotFound
		}
		s.logger.Error("Delete: repository error for price rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkCourtOwner(ctx, rule.CourtID, actorID); err != nil {
		return err
	}

	if err := s.priceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, priceRepo.ErrPriceRuleNotFound) {
			return ErrPriceRuleNotFound
		}
		s.logger.Error("Delete: repository error for price rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted price rule id=%d", id)
	return nil
}

// Вспомогательные методы

// checkOverlap проверяет пересечение интервала правила с существующими
// правилами того же дня недели. Вызывается внутри транзакции: выборка
// блокирует строки FOR UPDATE.
func (s *Service) checkOverlap(ctx context.Context, rule *domain.PriceRule, excludeID *int64) error {
	existing, err := s.priceRepo.ListByCourtAndWeekday(ctx, rule.CourtID, rule.Weekday)
	if err != nil {
		return fmt.Errorf("%w: checkOverlap - repository error: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if excludeID != nil && other.ID == *excludeID {
			continue
		}
		if domain.TimeRangesOverlap(rule.StartTime, rule.EndTime, other.StartTime, other.EndTime) {
			return ErrPriceRuleOverlap
		}
	}

	return nil
}

func buildRule(req *models.CreatePriceRuleRequest) (*domain.PriceRule, error) {
	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time", ErrInvalidInput)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time", ErrInvalidInput)
	}

	rule := &domain.PriceRule{
		CourtID:      req.CourtID,
		Weekday:      req.Weekday,
		StartTime:    startTime,
		EndTime:      endTime,
		PricePerSlot: req.PricePerSlot,
	}

	if err := validateRule(rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func applyUpdate(rule *domain.PriceRule, req *models.UpdatePriceRuleRequest) error {
	if req.Weekday != nil {
		rule.Weekday = *req.Weekday
	}
	if req.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: invalid start time", ErrInvalidInput)
		}
		rule.StartTime = startTime
	}
	if req.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return fmt.Errorf("%w: invalid end time", ErrInvalidInput)
		}
		rule.EndTime = endTime
	}
	if req.PricePerSlot != nil {
		rule.PricePerSlot = *req.PricePerSlot
	}
	return nil
}

func validateRule(rule *domain.PriceRule) error {
	if rule.Weekday < domain.MinWeekday || rule.Weekday > domain.MaxWeekday {
		return fmt.Errorf("%w: weekday must be between %d and %d", ErrInvalidInput, domain.MinWeekday, domain.MaxWeekday)
	}
	if !rule.StartTime.IsBefore(rule.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	if rule.PricePerSlot < 0 {
		return fmt.Errorf("%w: price per slot must not be negative", ErrInvalidInput)
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
