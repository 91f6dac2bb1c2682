package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchub/court-booking-service/internal/domain"
	bookingRepo "github.com/canchub/court-booking-service/internal/infra/storage/booking"
	"github.com/canchub/court-booking-service/internal/integrations/userservice"
	"github.com/canchub/court-booking-service/internal/integrations/venueservice"
	"github.com/canchub/court-booking-service/internal/notifications"
	"github.com/canchub/court-booking-service/internal/service/bookings/models"
)

const (
	playerID = int64(10)
	ownerID  = int64(77)
	otherID  = int64(99)
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// Моки

type stubBookingRepo struct {
	bookings map[int64]*domain.Booking
	updated  *domain.Booking
}

func newStubRepo(bookings ...*domain.Booking) *stubBookingRepo {
	m := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &stubBookingRepo{bookings: m}
}

func (s *stubBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *stubBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.GetByID(ctx, id)
}

func (s *stubBookingRepo) ListByUser(_ context.Context, _ domain.UserBookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) ListByCourt(_ context.Context, _ domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) ListByCourtIDs(_ context.Context, _ []int64, _, _ *time.Time) ([]*domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) UpdateStatus(_ context.Context, b *domain.Booking) error {
	s.updated = b
	s.bookings[b.ID] = b
	return nil
}

type stubVenueClient struct {
	ownerUserID int64
	courtErr    error
}

func (s *stubVenueClient) GetCourt(_ context.Context, courtID int64) (*venueservice.Court, error) {
	return &venueservice.Court{ID: courtID, Name: "Корт 1"}, s.courtErr
}

func (s *stubVenueClient) GetVenue(_ context.Context, venueID int64) (*venueservice.Venue, error) {
	return &venueservice.Venue{ID: venueID, OwnerUserID: s.ownerUserID}, nil
}

func (s *stubVenueClient) GetCourtOwner(_ context.Context, courtID int64) (*venueservice.Court, *venueservice.Venue, error) {
	if s.courtErr != nil {
		return nil, nil, s.courtErr
	}
	court := &venueservice.Court{ID: courtID, VenueID: 3, Name: "Корт 1"}
	venue := &venueservice.Venue{ID: 3, Name: "Клуб", OwnerUserID: s.ownerUserID}
	return court, venue, nil
}

func (s *stubVenueClient) ListCourtsByOwner(_ context.Context, _ int64) ([]venueservice.Court, error) {
	return []venueservice.Court{{ID: 5, VenueID: 3}}, nil
}

type stubUserClient struct{}

func (stubUserClient) GetUserWithGracefulDegradation(_ context.Context, userID int64) (*userservice.User, error) {
	return &userservice.User{ID: userID, Name: "Игрок", Email: "player@example.com"}, nil
}

type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingNotifier struct {
	events []notifications.BookingEvent
}

func (r *recordingNotifier) Notify(e notifications.BookingEvent) {
	r.events = append(r.events, e)
}

func pendingBooking() *domain.Booking {
	expires := now.Add(30 * time.Minute)
	return &domain.Booking{
		ID:            1,
		UserID:        playerID,
		CourtID:       5,
		StartDatetime: now.Add(48 * time.Hour),
		EndDatetime:   now.Add(49 * time.Hour),
		Status:        domain.StatusPending,
		PriceTotal:    50,
		ExpiresAt:     &expires,
	}
}

func newTestService(repo *stubBookingRepo, notifier *recordingNotifier) *Service {
	return NewService(
		repo,
		&stubVenueClient{ownerUserID: ownerID},
		stubUserClient{},
		inlineTxManager{},
		domain.NewDefaultStateMachine(),
		notifier,
		fixedTime{now},
		24,
		nopLogger{},
	)
}

func TestConfirm_ByOwner(t *testing.T) {
	repo := newStubRepo(pendingBooking())
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.Confirm(context.Background(), 1, &models.ConfirmBookingRequest{ActorID: ownerID})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, repo.updated)
	assert.Equal(t, domain.StatusConfirmed, repo.updated.Status)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notifications.EventBookingConfirmed, notifier.events[0].Type)
	assert.Equal(t, string(domain.StatusPending), notifier.events[0].OldStatus)
}

func TestConfirm_ByPlayerDenied(t *testing.T) {
	repo := newStubRepo(pendingBooking())
	svc := newTestService(repo, &recordingNotifier{})

	_, err := svc.Confirm(context.Background(), 1, &models.ConfirmBookingRequest{ActorID: playerID})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.updated)
}

func TestConfirm_NotFound(t *testing.T) {
	svc := newTestService(newStubRepo(), &recordingNotifier{})

	_, err := svc.Confirm(context.Background(), 404, &models.ConfirmBookingRequest{ActorID: ownerID})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirm_IllegalTransition(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusCancelled
	svc := newTestService(newStubRepo(b), &recordingNotifier{})

	_, err := svc.Confirm(context.Background(), 1, &models.ConfirmBookingRequest{ActorID: ownerID})
	require.ErrorIs(t, err, ErrIllegalTransition)
}

func TestDecline_ByOwner(t *testing.T) {
	repo := newStubRepo(pendingBooking())
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.Decline(context.Background(), 1, &models.DeclineBookingRequest{ActorID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDeclined), resp.Status)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notifications.EventBookingDeclined, notifier.events[0].Type)
}

func TestCancel_ByPlayer(t *testing.T) {
	repo := newStubRepo(pendingBooking())
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ActorID:            playerID,
		CancellationReason: "изменились планы",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "изменились планы", *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
}

func TestCancel_LateByOwner(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed
	b.StartDatetime = now.Add(2 * time.Hour) // внутри порога поздней отмены
	b.EndDatetime = now.Add(3 * time.Hour)
	svc := newTestService(newStubRepo(b), &recordingNotifier{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledLate), resp.Status)
}

func TestCancel_ByStrangerDenied(t *testing.T) {
	svc := newTestService(newStubRepo(pendingBooking()), &recordingNotifier{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: otherID})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc := newTestService(newStubRepo(pendingBooking()), &recordingNotifier{})

	long := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ActorID:            playerID,
		CancellationReason: string(long),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_Access(t *testing.T) {
	svc := newTestService(newStubRepo(pendingBooking()), &recordingNotifier{})

	// владелец бронирования
	resp, err := svc.GetByID(context.Background(), 1, playerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// владелец клуба
	_, err = svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)

	// посторонний
	_, err = svc.GetByID(context.Background(), 1, otherID)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetCourtBookings_OwnerOnly(t *testing.T) {
	svc := newTestService(newStubRepo(), &recordingNotifier{})

	_, err := svc.GetCourtBookings(context.Background(), &models.GetCourtBookingsRequest{
		CourtID: 5,
		ActorID: otherID,
	})
	require.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetCourtBookings(context.Background(), &models.GetCourtBookingsRequest{
		CourtID: 5,
		ActorID: ownerID,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(newStubRepo(), &recordingNotifier{})

	bad := "UNKNOWN"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: playerID,
		Status: &bad,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
