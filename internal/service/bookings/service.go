package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/canchub/court-booking-service/internal/domain"
	bookingRepo "github.com/canchub/court-booking-service/internal/infra/storage/booking"
	venueClient "github.com/canchub/court-booking-service/internal/integrations/venueservice"
	"github.com/canchub/court-booking-service/internal/notifications"
	"github.com/canchub/court-booking-service/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
// Переходы статусов делегируются машине состояний, проверки прав -
// VenueService (владелец клуба) и полю user_id бронирования
type Service struct {
	bookingRepo     BookingRepository
	venueClient     VenueServiceClient
	userClient      UserServiceClient
	txManager       TransactionManager
	stateMachine    domain.StateMachine
	notifier        notifications.Notifier
	timeProvider    TimeProvider
	lateWindowHours int
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	venueClient VenueServiceClient,
	userClient UserServiceClient,
	txManager TransactionManager,
	stateMachine domain.StateMachine,
	notifier notifications.Notifier,
	timeProvider TimeProvider,
	lateWindowHours int,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		venueClient:     venueClient,
		userClient:      userClient,
		txManager:       txManager,
		stateMachine:    stateMachine,
		notifier:        notifier,
		timeProvider:    timeProvider,
		lateWindowHours: lateWindowHours,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и владельцу клуба площадки
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, actorID); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%v for user=%d", req.Status, req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCourtBookings получает бронирования площадки
// Доступно только владельцу клуба: ответ содержит чужие user_id
func (s *Service) GetCourtBookings(ctx context.Context, req *models.GetCourtBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCourtBookings: fetching bookings for court=%d, actor=%d", req.CourtID, req.ActorID)

	if err := s.checkCourtOwner(ctx, req.CourtID, req.ActorID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCourtBookings: invalid filter for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByCourt(ctx, filter)
	if err != nil {
		s.logger.Error("GetCourtBookings: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: GetCourtBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCourtBookings: fetched %d bookings for court=%d", len(bookings), req.CourtID)
	return models.FromDomainBookingList(bookings), nil
}

// GetOwnerBookings получает бронирования по всем площадкам владельца клубов
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for owner=%d", req.OwnerID)

	courts, err := s.venueClient.ListCourtsByOwner(ctx, req.OwnerID)
	if err != nil {
		s.logger.Error("GetOwnerBookings: failed to list courts for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - failed to list courts: %v", ErrInternal, err)
	}

	courtIDs := make([]int64, 0, len(courts))
	for _, c := range courts {
		courtIDs = append(courtIDs, c.ID)
	}

	bookings, err := s.bookingRepo.ListByCourtIDs(ctx, courtIDs, req.From, req.To)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: fetched %d bookings across %d courts for owner=%d", len(bookings), len(courtIDs), req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование (PENDING -> CONFIRMED)
// Доступно только владельцу клуба площадки
func (s *Service) Confirm(ctx context.Context, bookingID int64, req *models.ConfirmBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d by actor=%d", bookingID, req.ActorID)

	booking, err := s.transition(ctx, bookingID, func(b *domain.Booking) error {
		if err := s.checkCourtOwner(ctx, b.CourtID, req.ActorID); err != nil {
			return err
		}
		return s.stateMachine.Confirm(b, s.timeProvider.Now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: booking id=%d confirmed", bookingID)
	s.notify(ctx, booking, notifications.EventBookingConfirmed, string(domain.StatusPending))
	return models.FromDomainBooking(booking), nil
}

// Decline отклоняет бронирование (PENDING -> DECLINED)
// Доступно только владельцу клуба площадки
func (s *Service) Decline(ctx context.Context, bookingID int64, req *models.DeclineBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Decline: declining booking id=%d by actor=%d", bookingID, req.ActorID)

	booking, err := s.transition(ctx, bookingID, func(b *domain.Booking) error {
		if err := s.checkCourtOwner(ctx, b.CourtID, req.ActorID); err != nil {
			return err
		}
		return s.stateMachine.Decline(b, s.timeProvider.Now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Decline: booking id=%d declined", bookingID)
	s.notify(ctx, booking, notifications.EventBookingDeclined, string(domain.StatusPending))
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование ({PENDING, CONFIRMED} -> CANCELLED | CANCELLED_LATE)
// Доступно владельцу бронирования и владельцу клуба площадки
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d", bookingID, req.ActorID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	var oldStatus domain.BookingStatus
	booking, err := s.transition(ctx, bookingID, func(b *domain.Booking) error {
		if err := s.checkBookingAccess(ctx, b, req.ActorID); err != nil {
			return err
		}

		oldStatus = b.Status
		if err := s.stateMachine.Cancel(b, s.timeProvider.Now(), s.lateWindowHours); err != nil {
			return err
		}
		if req.CancellationReason != "" {
			b.CancellationReason = &req.CancellationReason
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d cancelled with status=%s", bookingID, booking.Status)
	s.notify(ctx, booking, notifications.EventBookingCancelled, string(oldStatus))
	return models.FromDomainBooking(booking), nil
}

// transition выполняет переход статуса атомарно: бронирование читается
// FOR UPDATE, guard и мутация применяются к актуальной строке, затем
// статус сохраняется в той же транзакции
func (s *Service) transition(ctx context.Context, bookingID int64, apply func(b *domain.Booking) error) (*domain.Booking, error) {
	var booking *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.bookingRepo.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}

		if err := apply(b); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(ctx, b); err != nil {
			return fmt.Errorf("%w: transition - update error: %v", ErrInternal, err)
		}

		booking = b
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrIllegalTransition) {
			s.logger.Warn("transition: booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrIllegalTransition, err)
		}
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrCourtNotFound) {
			return nil, err
		}
		s.logger.Error("transition: booking id=%d failed: %v", bookingID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transition - transaction error: %v", ErrInternal, err)
	}

	return booking, nil
}

// checkBookingAccess проверяет, что актор владеет бронированием
// или является владельцем клуба площадки
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, actorID int64) error {
	if booking.UserID == actorID {
		return nil
	}

	if err := s.checkCourtOwner(ctx, booking.CourtID, actorID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkCourtOwner проверяет, что актор является владельцем клуба площадки
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

// notify собирает и отправляет событие жизненного цикла
// Обогащение названиями и контактами деградирует мягко: недоступность
// смежных сервисов не блокирует ни операцию, ни само уведомление
func (s *Service) notify(ctx context.Context, booking *domain.Booking, eventType string, oldStatus string) {
	event := notifications.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		CourtID:       booking.CourtID,
		StartDatetime: booking.StartDatetime,
		EndDatetime:   booking.EndDatetime,
		PriceTotal:    booking.PriceTotal,
		OldStatus:     oldStatus,
		NewStatus:     string(booking.Status),
		OccurredAt:    s.timeProvider.Now(),
	}

	if court, venue, err := s.venueClient.GetCourtOwner(ctx, booking.CourtID); err == nil {
		event.CourtName = court.Name
		event.VenueName = venue.Name
		event.OwnerContact = &notifications.Contact{Email: venue.OwnerEmail}
	}

	if user, err := s.userClient.GetUserWithGracefulDegradation(ctx, booking.UserID); err == nil {
		event.UserContact = &notifications.Contact{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		}
	}

	s.notifier.Notify(event)
}
