package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchub/court-booking-service/internal/domain"
	bookingRepo "github.com/canchub/court-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/canchub/court-booking-service/internal/infra/storage/schedule"
	"github.com/canchub/court-booking-service/internal/notifications"
)

// Моки

type stubBookingRepo struct {
	booking     *domain.Booking
	overlapping []*domain.Booking

	updateErr       error
	excludeID       *int64
	updatedWindow   *domain.Window
	updatedPrice    float64
	updateWindowHit bool
}

func (s *stubBookingRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *s.booking
	return &copied, nil
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.GetByIDForUpdate(ctx, id)
}

func (s *stubBookingRepo) ListBlockingOverlapping(_ context.Context, _ int64, _ domain.Window, excludeID *int64) ([]*domain.Booking, error) {
	s.excludeID = excludeID
	return s.overlapping, nil
}

func (s *stubBookingRepo) UpdateWindow(_ context.Context, _ int64, w domain.Window, priceTotal float64) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updateWindowHit = true
	s.updatedWindow = &w
	s.updatedPrice = priceTotal
	return nil
}

type stubScheduleRepo struct {
	rule *domain.ScheduleRule
}

func (s *stubScheduleRepo) GetByCourtAndWeekday(_ context.Context, _ int64, _ int) (*domain.ScheduleRule, error) {
	if s.rule == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return s.rule, nil
}

type stubPriceRepo struct {
	rules []*domain.PriceRule
}

func (s *stubPriceRepo) ListByCourtAndWeekday(_ context.Context, _ int64, _ int) ([]*domain.PriceRule, error) {
	return s.rules, nil
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

// Фикстуры: 2 июня 2025 — понедельник, корт открыт 07:00-23:00, слот 60 минут

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func mondayAt(hour int) time.Time {
	return time.Date(2025, 6, 2, hour, 0, 0, 0, time.UTC)
}

func fixtureRule() *domain.ScheduleRule {
	return &domain.ScheduleRule{
		ID:          1,
		CourtID:     5,
		Weekday:     0,
		OpenTime:    "07:00",
		CloseTime:   "23:00",
		SlotMinutes: 60,
	}
}

func fixturePrices() []*domain.PriceRule {
	return []*domain.PriceRule{
		{CourtID: 5, Weekday: 0, StartTime: "07:00", EndTime: "23:00", PricePerSlot: 25},
	}
}

func fixtureBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            7,
		UserID:        10,
		CourtID:       5,
		StartDatetime: mondayAt(10),
		EndDatetime:   mondayAt(12),
		Status:        status,
		PriceTotal:    50,
		ICSUID:        "b7@court-booking",
		ICSSequence:   0,
	}
}

func newTestUseCase(
	bookings *stubBookingRepo,
	schedules *stubScheduleRepo,
	prices *stubPriceRepo,
	notifier *recordingNotifier,
) *UseCase {
	uc := NewUseCase(bookings, schedules, prices, inlineTxManager{}, notifier, nopLogger{})
	uc.timeProvider = fixedTime{now}
	return uc
}

func validRequest() *Request {
	return &Request{
		BookingID:     7,
		ActorID:       10,
		StartDatetime: mondayAt(14),
		EndDatetime:   mondayAt(16),
	}
}

func TestExecute_Reschedules(t *testing.T) {
	bookings := &stubBookingRepo{booking: fixtureBooking(domain.StatusConfirmed)}
	notifier := &recordingNotifier{}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{rules: fixturePrices()}, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, mondayAt(14), resp.StartDatetime)
	assert.Equal(t, mondayAt(16), resp.EndDatetime)
	assert.Equal(t, 50.0, resp.PriceTotal)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 1, resp.ICSSequence)

	assert.True(t, bookings.updateWindowHit)
	assert.Equal(t, 50.0, bookings.updatedPrice)

	// Собственное прежнее окно исключается из проверки пересечений
	require.NotNil(t, bookings.excludeID)
	assert.Equal(t, int64(7), *bookings.excludeID)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notifications.EventBookingRescheduled, notifier.events[0].Type)
	assert.Equal(t, mondayAt(14), notifier.events[0].StartDatetime)
}

func TestExecute_RepricesNewWindow(t *testing.T) {
	bookings := &stubBookingRepo{booking: fixtureBooking(domain.StatusPending)}
	prices := &stubPriceRepo{rules: []*domain.PriceRule{
		{CourtID: 5, Weekday: 0, StartTime: "07:00", EndTime: "15:00", PricePerSlot: 20},
		{CourtID: 5, Weekday: 0, StartTime: "15:00", EndTime: "23:00", PricePerSlot: 40},
	}}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, prices, &recordingNotifier{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 60.0, resp.PriceTotal)
}

func TestExecute_NotFound(t *testing.T) {
	bookings := &stubBookingRepo{}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{rules: fixturePrices()}, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_NotOwner(t *testing.T) {
	bookings := &stubBookingRepo{booking: fixtureBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{rules: fixturePrices()}, &recordingNotifier{})

	req := validRequest()
	req.ActorID = 99
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, bookings.updateWindowHit)
}

func TestExecute_TerminalStatusNotReschedulable(t *testing.T) {
	for _, status := range domain.TerminalStatuses {
		t.Run(string(status), func(t *testing.T) {
			bookings := &stubBookingRepo{booking: fixtureBooking(status)}
			uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{rules: fixturePrices()}, &recordingNotifier{})

			_, err := uc.Execute(context.Background(), validRequest())

			assert.ErrorIs(t, err, ErrNotReschedulable)
		})
	}
}

func TestExecute_StartedBookingNotReschedulable(t *testing.T) {
	booking := fixtureBooking(domain.StatusConfirmed)
	booking.StartDatetime = now.Add(-time.Hour)
	booking.EndDatetime = now.Add(time.Hour)
	bookings := &stubBookingRepo{booking: booking}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{rules: fixturePrices()}, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrNotReschedulable)
}

func TestExecute_NewWindowInPast(t *testing.T) {
	bookings := &stubBookingRepo{booking: fixtureBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{rules: fixturePrices()}, &recordingNotifier{})

	req := validRequest()
	req.StartDatetime = now.Add(-2 * time.Hour)
	req.EndDatetime = now.Add(-time.Hour)
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrWindowInPast)
}

func TestExecute_NoScheduleForNewDay(t *testing.T) {
	bookings := &stubBookingRepo{booking: fixtureBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(bookings, &stubScheduleRepo{}, &stubPriceRepo{rules: fixturePrices()}, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrNoSchedule)
}

func TestExecute_InvalidWindow(t *testing.T) {
	bookings := &stubBookingRepo{booking: fixtureBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{rules: fixturePrices()}, &recordingNotifier{})

	// 05:00 раньше открытия корта
	req := validRequest()
	req.StartDatetime = mondayAt(5)
	req.EndDatetime = mondayAt(6)
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestExecute_WindowTaken(t *testing.T) {
	bookings := &stubBookingRepo{
		booking:     fixtureBooking(domain.StatusConfirmed),
		overlapping: []*domain.Booking{{ID: 8, Status: domain.StatusPending}},
	}
	notifier := &recordingNotifier{}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{rules: fixturePrices()}, notifier)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrWindowTaken)
	assert.False(t, bookings.updateWindowHit)
	assert.Empty(t, notifier.events)
}

func TestExecute_WindowTakenOnConstraint(t *testing.T) {
	bookings := &stubBookingRepo{
		booking:   fixtureBooking(domain.StatusConfirmed),
		updateErr: bookingRepo.ErrWindowTaken,
	}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{rules: fixturePrices()}, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrWindowTaken)
}

func TestExecute_PricingGap(t *testing.T) {
	bookings := &stubBookingRepo{booking: fixtureBooking(domain.StatusConfirmed)}
	prices := &stubPriceRepo{rules: []*domain.PriceRule{
		{CourtID: 5, Weekday: 0, StartTime: "07:00", EndTime: "15:00", PricePerSlot: 20},
	}}
	uc := newTestUseCase(bookings, &stubScheduleRepo{rule: fixtureRule()}, prices, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPricingGap)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(req *Request)
	}{
		{name: "нулевой bookingID", modify: func(req *Request) { req.BookingID = 0 }},
		{name: "нулевой actorID", modify: func(req *Request) { req.ActorID = 0 }},
		{name: "пустое начало окна", modify: func(req *Request) { req.StartDatetime = time.Time{} }},
		{name: "пустой конец окна", modify: func(req *Request) { req.EndDatetime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&stubBookingRepo{}, &stubScheduleRepo{rule: fixtureRule()}, &stubPriceRepo{}, &recordingNotifier{})

			req := validRequest()
			tt.modify(req)
			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
