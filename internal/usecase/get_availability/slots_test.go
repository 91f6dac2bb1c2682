package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchub/court-booking-service/internal/domain"
	scheduleRepo "github.com/canchub/court-booking-service/internal/infra/storage/schedule"
)

// 2 июня 2025 — понедельник
var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func shortDayRule() *domain.ScheduleRule {
	return &domain.ScheduleRule{
		ID:          1,
		CourtID:     5,
		Weekday:     0,
		OpenTime:    "10:00",
		CloseTime:   "13:00",
		SlotMinutes: 60,
	}
}

func TestGenerateSlots_Grid(t *testing.T) {
	slots := generateSlots(shortDayRule(), nil, nil, testDate, at(8, 0))

	require.Len(t, slots, 3)
	assert.Equal(t, at(10, 0), slots[0].Start)
	assert.Equal(t, at(11, 0), slots[0].End)
	assert.Equal(t, at(12, 0), slots[2].Start)
	assert.Equal(t, at(13, 0), slots[2].End)

	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Nil(t, s.PricePerSlot)
	}
}

func TestGenerateSlots_BookedSlotUnavailable(t *testing.T) {
	bookings := []*domain.Booking{
		{
			CourtID:       5,
			StartDatetime: at(11, 0),
			EndDatetime:   at(12, 0),
			Status:        domain.StatusConfirmed,
		},
	}

	slots := generateSlots(shortDayRule(), nil, bookings, testDate, at(8, 0))

	require.Len(t, slots, 3)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)
}

func TestGenerateSlots_NonBlockingBookingIgnored(t *testing.T) {
	bookings := []*domain.Booking{
		{
			CourtID:       5,
			StartDatetime: at(11, 0),
			EndDatetime:   at(12, 0),
			Status:        domain.StatusCancelled,
		},
	}

	slots := generateSlots(shortDayRule(), nil, bookings, testDate, at(8, 0))

	require.Len(t, slots, 3)
	assert.True(t, slots[1].Available)
}

func TestGenerateSlots_PastSlotsUnavailable(t *testing.T) {
	// сейчас 11:30: слоты 10:00 и 11:00 уже начались
	slots := generateSlots(shortDayRule(), nil, nil, testDate, at(11, 30))

	require.Len(t, slots, 3)
	assert.False(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)
}

func TestGenerateSlots_Prices(t *testing.T) {
	prices := []*domain.PriceRule{
		{CourtID: 5, Weekday: 0, StartTime: "10:00", EndTime: "12:00", PricePerSlot: 30},
	}

	slots := generateSlots(shortDayRule(), prices, nil, testDate, at(8, 0))

	require.Len(t, slots, 3)
	require.NotNil(t, slots[0].PricePerSlot)
	assert.Equal(t, 30.0, *slots[0].PricePerSlot)
	require.NotNil(t, slots[1].PricePerSlot)
	// дыра в прайсе: слот отдаётся без цены, но остаётся в сетке
	assert.Nil(t, slots[2].PricePerSlot)
}

func TestGenerateSlots_DegenerateDay(t *testing.T) {
	rule := shortDayRule()
	rule.OpenTime = "13:00"
	rule.CloseTime = "10:00"

	slots := generateSlots(rule, nil, nil, testDate, at(8, 0))
	assert.Empty(t, slots)
}

// Моки для Execute

type stubBookingRepo struct {
	bookings []*domain.Booking
}

func (s *stubBookingRepo) ListByCourt(_ context.Context, _ domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, nil
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

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_NoScheduleReturnsEmptyGrid(t *testing.T) {
	uc := NewUseCase(&stubBookingRepo{}, &stubScheduleRepo{}, &stubPriceRepo{}, "EUR", nopLogger{})
	uc.timeProvider = fixedTime{at(8, 0)}

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 5, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.CourtID)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Empty(t, resp.Slots)
}

func TestExecute_FullDay(t *testing.T) {
	uc := NewUseCase(
		&stubBookingRepo{bookings: []*domain.Booking{
			{CourtID: 5, StartDatetime: at(10, 0), EndDatetime: at(11, 0), Status: domain.StatusPending},
		}},
		&stubScheduleRepo{rule: shortDayRule()},
		&stubPriceRepo{rules: []*domain.PriceRule{
			{CourtID: 5, Weekday: 0, StartTime: "10:00", EndTime: "13:00", PricePerSlot: 30},
		}},
		"EUR",
		nopLogger{},
	)
	uc.timeProvider = fixedTime{at(8, 0)}

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 5, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.SlotMinutes)
	require.Len(t, resp.Slots, 3)
	assert.False(t, resp.Slots[0].Available) // занят PENDING бронированием
	assert.True(t, resp.Slots[1].Available)
	assert.True(t, resp.Slots[2].Available)
}
