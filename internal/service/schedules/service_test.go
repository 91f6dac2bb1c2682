package schedules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchub/court-booking-service/internal/domain"
	scheduleRepo "github.com/canchub/court-booking-service/internal/infra/storage/schedule"
	"github.com/canchub/court-booking-service/internal/integrations/venueservice"
	"github.com/canchub/court-booking-service/internal/service/schedules/models"
	"github.com/canchub/court-booking-service/pkg/ptr"
	"github.com/canchub/court-booking-service/pkg/types"
)

const (
	testCourtID = int64(5)
	testOwnerID = int64(77)
	testOtherID = int64(99)
)

type stubScheduleRepo struct {
	rules  map[int64]*domain.ScheduleRule
	nextID int64
}

func newStubScheduleRepo() *stubScheduleRepo {
	return &stubScheduleRepo{rules: make(map[int64]*domain.ScheduleRule), nextID: 1}
}

func (r *stubScheduleRepo) Create(_ context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	for _, other := range r.rules {
		if other.CourtID == rule.CourtID && other.Weekday == rule.Weekday {
			return nil, scheduleRepo.ErrScheduleExists
		}
	}
	created := *rule
	created.ID = r.nextID
	r.nextID++
	r.rules[created.ID] = &created
	return &created, nil
}

func (r *stubScheduleRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleRule, error) {
	rule, ok := r.rules[id]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	copied := *rule
	return &copied, nil
}

func (r *stubScheduleRepo) GetByCourtAndWeekday(_ context.Context, courtID int64, weekday int) (*domain.ScheduleRule, error) {
	for _, rule := range r.rules {
		if rule.CourtID == courtID && rule.Weekday == weekday {
			copied := *rule
			return &copied, nil
		}
	}
	return nil, scheduleRepo.ErrScheduleNotFound
}

func (r *stubScheduleRepo) ListByCourt(_ context.Context, courtID int64) ([]*domain.ScheduleRule, error) {
	var result []*domain.ScheduleRule
	for _, rule := range r.rules {
		if rule.CourtID == courtID {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (r *stubScheduleRepo) Update(_ context.Context, rule *domain.ScheduleRule) error {
	if _, ok := r.rules[rule.ID]; !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	for _, other := range r.rules {
		if other.ID != rule.ID && other.CourtID == rule.CourtID && other.Weekday == rule.Weekday {
			return scheduleRepo.ErrScheduleExists
		}
	}
	copied := *rule
	r.rules[rule.ID] = &copied
	return nil
}

func (r *stubScheduleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rules[id]; !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	delete(r.rules, id)
	return nil
}

type stubVenueClient struct {
	courtErr error
}

func (c *stubVenueClient) GetCourtOwner(_ context.Context, courtID int64) (*venueservice.Court, *venueservice.Venue, error) {
	if c.courtErr != nil {
		return nil, nil, c.courtErr
	}
	court := &venueservice.Court{ID: courtID, VenueID: 1, Name: "Корт 1", Sport: "padel"}
	venue := &venueservice.Venue{ID: 1, Name: "Клуб", OwnerUserID: testOwnerID}
	return court, venue, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *stubScheduleRepo, *stubVenueClient) {
	repo := newStubScheduleRepo()
	venue := &stubVenueClient{}
	svc := NewService(repo, venue, nopLogger{})
	return svc, repo, venue
}

func seedRule(t *testing.T, repo *stubScheduleRepo, weekday int) *domain.ScheduleRule {
	t.Helper()

	openTime, err := types.NewTimeStringFromString("07:00")
	require.NoError(t, err)
	closeTime, err := types.NewTimeStringFromString("23:00")
	require.NoError(t, err)

	rule, err := repo.Create(context.Background(), &domain.ScheduleRule{
		CourtID:     testCourtID,
		Weekday:     weekday,
		OpenTime:    openTime,
		CloseTime:   closeTime,
		SlotMinutes: 60,
	})
	require.NoError(t, err)
	return rule
}

func createRequest() *models.CreateScheduleRequest {
	return &models.CreateScheduleRequest{
		ActorID:     testOwnerID,
		CourtID:     testCourtID,
		Weekday:     0,
		OpenTime:    "07:00",
		CloseTime:   "23:00",
		SlotMinutes: 60,
	}
}

func TestCreate_Success(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, testCourtID, resp.CourtID)
	assert.Equal(t, "07:00", resp.OpenTime)
	assert.Equal(t, "23:00", resp.CloseTime)
	assert.Equal(t, 60, resp.SlotMinutes)
}

func TestCreate_AlreadyExists(t *testing.T) {
	svc, repo, _ := newTestService()
	seedRule(t, repo, 0)

	_, err := svc.Create(context.Background(), createRequest())

	assert.ErrorIs(t, err, ErrScheduleAlreadyExists)
}

func TestCreate_OtherWeekdayAllowed(t *testing.T) {
	svc, repo, _ := newTestService()
	seedRule(t, repo, 3)

	_, err := svc.Create(context.Background(), createRequest())

	assert.NoError(t, err)
}

func TestCreate_NotOwner(t *testing.T) {
	svc, _, _ := newTestService()

	req := createRequest()
	req.ActorID = testOtherID
	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_CourtNotFound(t *testing.T) {
	svc, _, venue := newTestService()
	venue.courtErr = venueservice.ErrCourtNotFound

	_, err := svc.Create(context.Background(), createRequest())

	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestCreate_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(req *models.CreateScheduleRequest)
	}{
		{
			name:   "некорректное время открытия",
			modify: func(req *models.CreateScheduleRequest) { req.OpenTime = "7 утра" },
		},
		{
			name:   "некорректное время закрытия",
			modify: func(req *models.CreateScheduleRequest) { req.CloseTime = "24:00" },
		},
		{
			name:   "день недели вне диапазона",
			modify: func(req *models.CreateScheduleRequest) { req.Weekday = 7 },
		},
		{
			name:   "отрицательный день недели",
			modify: func(req *models.CreateScheduleRequest) { req.Weekday = -1 },
		},
		{
			name: "открытие не раньше закрытия",
			modify: func(req *models.CreateScheduleRequest) {
				req.OpenTime = "23:00"
				req.CloseTime = "07:00"
			},
		},
		{
			name:   "слот короче минимума",
			modify: func(req *models.CreateScheduleRequest) { req.SlotMinutes = domain.MinSlotMinutes - 1 },
		},
		{
			name:   "слот длиннее максимума",
			modify: func(req *models.CreateScheduleRequest) { req.SlotMinutes = domain.MaxSlotMinutes + 1 },
		},
		{
			name: "рабочие часы не кратны слоту",
			modify: func(req *models.CreateScheduleRequest) {
				req.CloseTime = "22:30"
				req.SlotMinutes = 60
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService()

			req := createRequest()
			tt.modify(req)
			_, err := svc.Create(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestListByCourt(t *testing.T) {
	svc, repo, _ := newTestService()
	seedRule(t, repo, 0)
	seedRule(t, repo, 1)

	resp, err := svc.ListByCourt(context.Background(), testCourtID)

	require.NoError(t, err)
	assert.Len(t, resp.Schedules, 2)
}

func TestListByCourt_Empty(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.ListByCourt(context.Background(), testCourtID)

	require.NoError(t, err)
	assert.Empty(t, resp.Schedules)
}

func TestUpdate_Success(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0)

	resp, err := svc.Update(context.Background(), rule.ID, &models.UpdateScheduleRequest{
		ActorID:     testOwnerID,
		SlotMinutes: ptr.Ptr(30),
	})

	require.NoError(t, err)
	assert.Equal(t, 30, resp.SlotMinutes)
	assert.Equal(t, "07:00", resp.OpenTime)

	stored, err := repo.GetByID(context.Background(), rule.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.SlotMinutes)
}

func TestUpdate_WeekdayConflict(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0)
	seedRule(t, repo, 1)

	_, err := svc.Update(context.Background(), rule.ID, &models.UpdateScheduleRequest{
		ActorID: testOwnerID,
		Weekday: ptr.Ptr(1),
	})

	assert.ErrorIs(t, err, ErrScheduleAlreadyExists)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), 404, &models.UpdateScheduleRequest{
		ActorID:     testOwnerID,
		SlotMinutes: ptr.Ptr(30),
	})

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestUpdate_NotOwner(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0)

	_, err := svc.Update(context.Background(), rule.ID, &models.UpdateScheduleRequest{
		ActorID:     testOtherID,
		SlotMinutes: ptr.Ptr(30),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_InvalidInput(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0)

	// 07:00-23:00 не делится на слоты по 45 минут
	_, err := svc.Update(context.Background(), rule.ID, &models.UpdateScheduleRequest{
		ActorID:     testOwnerID,
		SlotMinutes: ptr.Ptr(45),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_Success(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0)

	err := svc.Delete(context.Background(), rule.ID, testOwnerID)

	require.NoError(t, err)
	_, err = repo.GetByID(context.Background(), rule.ID)
	assert.ErrorIs(t, err, scheduleRepo.ErrScheduleNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(context.Background(), 404, testOwnerID)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestDelete_NotOwner(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0)

	err := svc.Delete(context.Background(), rule.ID, testOtherID)

	assert.ErrorIs(t, err, ErrAccessDenied)
}
