package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/canchub/court-booking-service/internal/domain"
	scheduleRepo "github.com/canchub/court-booking-service/internal/infra/storage/schedule"
)

// UseCase use case для получения дневной сетки доступности площадки
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	priceRepo    PriceRepository
	timeProvider TimeProvider
	currency     string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	priceRepo PriceRepository,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		priceRepo:    priceRepo,
		timeProvider: &RealTimeProvider{},
		currency:     currency,
		logger:       logger,
	}
}

// Execute строит сетку доступности площадки на дату.
//
// День без расписания — не ошибка: возвращается пустой список слотов,
// чтобы клиент мог отрисовать "закрыто" без обработки отказа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: court=%d, date=%s", req.CourtID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		CourtID:  req.CourtID,
		Date:     req.Date.Format(domain.DateFormat),
		Currency: uc.currency,
		Slots:    []Slot{},
	}

	weekday := domain.WeekdayOf(req.Date)

	rule, err := uc.scheduleRepo.GetByCourtAndWeekday(ctx, req.CourtID, weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailability: court=%d closed on weekday=%d", req.CourtID, weekday)
			return resp, nil
		}
		uc.logger.Error("GetAvailability: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	resp.SlotMinutes = rule.SlotMinutes

	prices, err := uc.priceRepo.ListByCourtAndWeekday(ctx, req.CourtID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get price rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get price rules: %v", ErrInternal, err)
	}

	from, to := dayBounds(req.Date)
	bookings, err := uc.bookingRepo.ListByCourt(ctx, domain.CourtBookingsFilter{
		CourtID:      req.CourtID,
		From:         &from,
		To:           &to,
		OnlyBlocking: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	resp.Slots = generateSlots(rule, prices, bookings, req.Date, uc.timeProvider.Now())

	uc.logger.Info("GetAvailability: court=%d, date=%s, %d slots",
		req.CourtID, resp.Date, len(resp.Slots))
	return resp, nil
}
