package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/canchub/court-booking-service/internal/domain"
	bookingRepo "github.com/canchub/court-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/canchub/court-booking-service/internal/infra/storage/schedule"
	venueClient "github.com/canchub/court-booking-service/internal/integrations/venueservice"
	"github.com/canchub/court-booking-service/internal/notifications"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo       BookingRepository
	scheduleRepo      ScheduleRepository
	priceRepo         PriceRepository
	venueClient       VenueServiceClient
	txManager         TransactionManager
	notifier          notifications.Notifier
	timeProvider      TimeProvider
	pendingTTLMinutes int
	autoConfirm       bool
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	priceRepo PriceRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	notifier notifications.Notifier,
	pendingTTLMinutes int,
	autoConfirm bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:       bookingRepo,
		scheduleRepo:      scheduleRepo,
		priceRepo:         priceRepo,
		venueClient:       venueClient,
		txManager:         txManager,
		notifier:          notifier,
		timeProvider:      &RealTimeProvider{},
		pendingTTLMinutes: pendingTTLMinutes,
		autoConfirm:       autoConfirm,
		logger:            logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Валидация расписания, проверка пересечений и расчёт цены выполняются
// в одной сериализуемой транзакции: конкурентная заявка на пересекающееся
// окно сериализуется на FOR UPDATE и упирается в уже вставленную строку.
// Exclusion constraint в БД страхует тот же инвариант на случай записи
// мимо этого пути.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, court=%d, window=%s - %s",
		req.UserID, req.CourtID,
		req.StartDatetime.Format(time.RFC3339), req.EndDatetime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Окно должно начинаться в будущем
	if !req.StartDatetime.After(now) {
		uc.logger.Warn("CreateBooking: window starts in the past for user=%d", req.UserID)
		return nil, ErrWindowInPast
	}

	// 3. Проверяем существование площадки
	court, err := uc.venueClient.GetCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, venueClient.ErrCourtNotFound) {
			uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	window := domain.NewWindow(req.StartDatetime, req.EndDatetime)
	weekday := domain.WeekdayOf(req.StartDatetime)

	var result *domain.Booking

	// 4. Валидация, проверка пересечений и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Расписание площадки на день недели
		rule, err := uc.scheduleRepo.GetByCourtAndWeekday(txCtx, req.CourtID, weekday)
		if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 4.2. Проверяем окно против расписания
		if err := domain.ValidateWindow(rule, window); err != nil {
			uc.logger.Warn("CreateBooking: window validation failed for court=%d: %v", req.CourtID, err)
			if errors.Is(err, domain.ErrNoScheduleForDay) {
				return ErrNoSchedule
			}
			return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}

		// 4.3. Проверяем пересечение с активными бронированиями (FOR UPDATE)
		overlapping, err := uc.bookingRepo.ListBlockingOverlapping(txCtx, req.CourtID, window, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: window taken for court=%d, %d overlapping bookings",
				req.CourtID, len(overlapping))
			return ErrWindowTaken
		}

		// 4.4. Считаем цену по ценовым правилам дня
		prices, err := uc.priceRepo.ListByCourtAndWeekday(txCtx, req.CourtID, weekday)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get price rules: %v", err)
			return fmt.Errorf("%w: failed to get price rules: %v", ErrInternal, err)
		}

		total, err := domain.PriceWindow(rule, prices, window)
		if err != nil {
			uc.logger.Warn("CreateBooking: pricing failed for court=%d: %v", req.CourtID, err)
			return fmt.Errorf("%w: %v", ErrPricingGap, err)
		}

		// 4.5. Собираем бронирование
		booking := &domain.Booking{
			UserID:        req.UserID,
			CourtID:       req.CourtID,
			StartDatetime: req.StartDatetime,
			EndDatetime:   req.EndDatetime,
			Status:        domain.StatusPending,
			PriceTotal:    total,
			ICSUID:        uuid.NewString(),
			ICSSequence:   0,
		}

		if uc.autoConfirm {
			booking.Status = domain.StatusConfirmed
		} else {
			expiresAt := now.Add(time.Duration(uc.pendingTTLMinutes) * time.Minute)
			booking.ExpiresAt = &expiresAt
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrWindowTaken) {
				uc.logger.Warn("CreateBooking: window taken for court=%d (constraint)", req.CourtID)
				return ErrWindowTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, status=%s, price=%.2f",
		result.ID, result.Status, result.PriceTotal)

	uc.notifier.Notify(notifications.BookingEvent{
		Type:          notifications.EventBookingCreated,
		BookingID:     result.ID,
		UserID:        result.UserID,
		CourtID:       result.CourtID,
		CourtName:     court.Name,
		StartDatetime: result.StartDatetime,
		EndDatetime:   result.EndDatetime,
		PriceTotal:    result.PriceTotal,
		NewStatus:     string(result.Status),
		OccurredAt:    now,
	})

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		CourtID:       result.CourtID,
		StartDatetime: result.StartDatetime,
		EndDatetime:   result.EndDatetime,
		Status:        string(result.Status),
		PriceTotal:    result.PriceTotal,
		ICSUID:        result.ICSUID,
		ExpiresAt:     result.ExpiresAt,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
