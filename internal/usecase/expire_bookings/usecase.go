package expire_bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/canchub/court-booking-service/internal/domain"
	"github.com/canchub/court-booking-service/internal/notifications"
)

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("expire_bookings: internal error")

// UseCase периодический sweep протухших PENDING бронирований.
//
// Сам переход выполняется одним UPDATE с условием по статусу и
// expires_at: запись, которую успели подтвердить или отменить,
// под условие не попадает. Sweep идемпотентен, пропущенный запуск
// догоняется следующим.
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     notifications.Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier notifications.Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит все PENDING бронирования с истёкшим expires_at
// в EXPIRED и возвращает число затронутых записей
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()

	var expiredIDs []int64
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		ids, err := uc.bookingRepo.ExpirePending(txCtx, now)
		if err != nil {
			return fmt.Errorf("%w: sweep failed: %v", ErrInternal, err)
		}
		expiredIDs = ids
		return nil
	})
	if err != nil {
		uc.logger.Error("ExpireBookings: %v", err)
		return 0, err
	}

	if len(expiredIDs) == 0 {
		return 0, nil
	}

	uc.logger.Info("ExpireBookings: expired %d bookings", len(expiredIDs))

	for _, id := range expiredIDs {
		booking, err := uc.bookingRepo.GetByID(ctx, id)
		if err != nil {
			uc.logger.Warn("ExpireBookings: failed to load booking id=%d for notification: %v", id, err)
			continue
		}

		uc.notifier.Notify(notifications.BookingEvent{
			Type:          notifications.EventBookingExpired,
			BookingID:     booking.ID,
			UserID:        booking.UserID,
			CourtID:       booking.CourtID,
			StartDatetime: booking.StartDatetime,
			EndDatetime:   booking.EndDatetime,
			PriceTotal:    booking.PriceTotal,
			OldStatus:     string(domain.StatusPending),
			NewStatus:     string(booking.Status),
			OccurredAt:    now,
		})
	}

	return len(expiredIDs), nil
}
