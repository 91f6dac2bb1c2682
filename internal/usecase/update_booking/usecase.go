package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canchub/court-booking-service/internal/domain"
	bookingRepo "github.com/canchub/court-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/canchub/court-booking-service/internal/infra/storage/schedule"
	"github.com/canchub/court-booking-service/internal/notifications"
)

// UseCase use case для переноса бронирования на другое окно
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	priceRepo    PriceRepository
	txManager    TransactionManager
	notifier     notifications.Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	priceRepo PriceRepository,
	txManager TransactionManager,
	notifier notifications.Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		priceRepo:    priceRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет перенос бронирования.
//
// Новое окно проходит те же проверки, что и при создании: расписание,
// пересечения (своё прежнее окно исключается из проверки), цена.
// Статус при переносе сохраняется, ics_sequence инкрементируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, actor=%d, window=%s - %s",
		req.BookingID, req.ActorID,
		req.StartDatetime.Format(time.RFC3339), req.EndDatetime.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if !req.StartDatetime.After(now) {
		uc.logger.Warn("UpdateBooking: new window starts in the past for booking=%d", req.BookingID)
		return nil, ErrWindowInPast
	}

	window := domain.NewWindow(req.StartDatetime, req.EndDatetime)
	weekday := domain.WeekdayOf(req.StartDatetime)

	var result *domain.Booking
	var oldWindow domain.Window

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Читаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: repository error for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		// 2. Переносить может только владелец бронирования
		if booking.UserID != req.ActorID {
			uc.logger.Warn("UpdateBooking: actor=%d does not own booking id=%d", req.ActorID, req.BookingID)
			return ErrAccessDenied
		}

		// 3. Переносимы только активные бронирования, ещё не начавшиеся
		if !booking.IsBlocking() || !booking.StartDatetime.After(now) {
			uc.logger.Warn("UpdateBooking: booking id=%d not reschedulable, status=%s", req.BookingID, booking.Status)
			return ErrNotReschedulable
		}

		oldWindow = booking.Window()

		// 4. Новое окно против расписания
		rule, err := uc.scheduleRepo.GetByCourtAndWeekday(txCtx, booking.CourtID, weekday)
		if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("UpdateBooking: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		if err := domain.ValidateWindow(rule, window); err != nil {
			uc.logger.Warn("UpdateBooking: window validation failed for booking=%d: %v", req.BookingID, err)
			if errors.Is(err, domain.ErrNoScheduleForDay) {
				return ErrNoSchedule
			}
			return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}

		// 5. Пересечения, исключая собственное прежнее окно
		overlapping, err := uc.bookingRepo.ListBlockingOverlapping(txCtx, booking.CourtID, window, &booking.ID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("UpdateBooking: window taken for booking=%d", req.BookingID)
			return ErrWindowTaken
		}

		// 6. Пересчитываем цену по правилам нового дня
		prices, err := uc.priceRepo.ListByCourtAndWeekday(txCtx, booking.CourtID, weekday)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get price rules: %v", err)
			return fmt.Errorf("%w: failed to get price rules: %v", ErrInternal, err)
		}

		total, err := domain.PriceWindow(rule, prices, window)
		if err != nil {
			uc.logger.Warn("UpdateBooking: pricing failed for booking=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: %v", ErrPricingGap, err)
		}

		// 7. Сохраняем окно и цену
		if err := uc.bookingRepo.UpdateWindow(txCtx, booking.ID, window, total); err != nil {
			if errors.Is(err, bookingRepo.ErrWindowTaken) {
				return ErrWindowTaken
			}
			uc.logger.Error("UpdateBooking: failed to update window for booking=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update window: %v", ErrInternal, err)
		}

		booking.StartDatetime = window.Start
		booking.EndDatetime = window.End
		booking.PriceTotal = total
		booking.ICSSequence++
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: rescheduled booking id=%d from %s to %s",
		result.ID, oldWindow.Start.Format(time.RFC3339), result.StartDatetime.Format(time.RFC3339))

	uc.notifier.Notify(notifications.BookingEvent{
		Type:          notifications.EventBookingRescheduled,
		BookingID:     result.ID,
		UserID:        result.UserID,
		CourtID:       result.CourtID,
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
		ICSSequence:   result.ICSSequence,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
