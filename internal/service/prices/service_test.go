package prices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchub/court-booking-service/internal/domain"
	priceRepo "github.com/canchub/court-booking-service/internal/infra/storage/price"
	"github.com/canchub/court-booking-service/internal/integrations/venueservice"
	"github.com/canchub/court-booking-service/internal/service/prices/models"
	"github.com/canchub/court-booking-service/pkg/ptr"
	"github.com/canchub/court-booking-service/pkg/types"
)

const (
	testCourtID = int64(5)
	testOwnerID = int64(77)
	testOtherID = int64(99)
)

type stubPriceRepo struct {
	rules  map[int64]*domain.PriceRule
	nextID int64
}

func newStubPriceRepo() *stubPriceRepo {
	return &stubPriceRepo{rules: make(map[int64]*domain.PriceRule), nextID: 1}
}

func (r *stubPriceRepo) Create(_ context.Context, rule *domain.PriceRule) (*domain.PriceRule, error) {
	created := *rule
	created.ID = r.nextID
	r.nextID++
	r.rules[created.ID] = &created
	return &created, nil
}

func (r *stubPriceRepo) GetByID(_ context.Context, id int64) (*domain.PriceRule, error) {
	rule, ok := r.rules[id]
	if !ok {
		return nil, priceRepo.ErrPriceRuleNotFound
	}
	copied := *rule
	return &copied, nil
}

func (r *stubPriceRepo) ListByCourtAndWeekday(_ context.Context, courtID int64, weekday int) ([]*domain.PriceRule, error) {
	var result []*domain.PriceRule
	for _, rule := range r.rules {
		if rule.CourtID == courtID && rule.Weekday == weekday {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (r *stubPriceRepo) ListByCourt(_ context.Context, courtID int64) ([]*domain.PriceRule, error) {
	var result []*domain.PriceRule
	for _, rule := range r.rules {
		if rule.CourtID == courtID {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (r *stubPriceRepo) Update(_ context.Context, rule *domain.PriceRule) error {
	if _, ok := r.rules[rule.ID]; !ok {
		return priceRepo.ErrPriceRuleNotFound
	}
	copied := *rule
	r.rules[rule.ID] = &copied
	return nil
}

func (r *stubPriceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rules[id]; !ok {
		return priceRepo.ErrPriceRuleNotFound
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *stubPriceRepo, *stubVenueClient) {
	repo := newStubPriceRepo()
	venue := &stubVenueClient{}
	svc := NewService(repo, venue, inlineTxManager{}, nopLogger{})
	return svc, repo, venue
}

func seedRule(t *testing.T, repo *stubPriceRepo, weekday int, start, end string, price float64) *domain.PriceRule {
	t.Helper()

	startTime, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	endTime, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)

	rule, err := repo.Create(context.Background(), &domain.PriceRule{
		CourtID:      testCourtID,
		Weekday:      weekday,
		StartTime:    startTime,
		EndTime:      endTime,
		PricePerSlot: price,
	})
	require.NoError(t, err)
	return rule
}

func createRequest() *models.CreatePriceRuleRequest {
	return &models.CreatePriceRuleRequest{
		ActorID:      testOwnerID,
		CourtID:      testCourtID,
		Weekday:      0,
		StartTime:    "07:00",
		EndTime:      "17:00",
		PricePerSlot: 20.0,
	}
}

func TestCreate_Success(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, testCourtID, resp.CourtID)
	assert.Equal(t, "07:00", resp.StartTime)
	assert.Equal(t, "17:00", resp.EndTime)
	assert.Equal(t, 20.0, resp.PricePerSlot)
}

func TestCreate_Overlap(t *testing.T) {
	svc, repo, _ := newTestService()
	seedRule(t, repo, 0, "10:00", "14:00", 25.0)

	_, err := svc.Create(context.Background(), createRequest())

	assert.ErrorIs(t, err, ErrPriceRuleOverlap)
}

func TestCreate_NoOverlapOnOtherWeekday(t *testing.T) {
	svc, repo, _ := newTestService()
	seedRule(t, repo, 3, "07:00", "17:00", 25.0)

	_, err := svc.Create(context.Background(), createRequest())

	assert.NoError(t, err)
}

func TestCreate_TouchingIntervalsAllowed(t *testing.T) {
	svc, repo, _ := newTestService()
	seedRule(t, repo, 0, "17:00", "23:00", 30.0)

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
		modify func(req *models.CreatePriceRuleRequest)
	}{
		{
			name:   "некорректное время начала",
			modify: func(req *models.CreatePriceRuleRequest) { req.StartTime = "25:00" },
		},
		{
			name:   "некорректное время конца",
			modify: func(req *models.CreatePriceRuleRequest) { req.EndTime = "noon" },
		},
		{
			name:   "день недели вне диапазона",
			modify: func(req *models.CreatePriceRuleRequest) { req.Weekday = 7 },
		},
		{
			name:   "отрицательный день недели",
			modify: func(req *models.CreatePriceRuleRequest) { req.Weekday = -1 },
		},
		{
			name: "начало не раньше конца",
			modify: func(req *models.CreatePriceRuleRequest) {
				req.StartTime = "17:00"
				req.EndTime = "07:00"
			},
		},
		{
			name:   "вырожденный интервал",
			modify: func(req *models.CreatePriceRuleRequest) { req.EndTime = "07:00" },
		},
		{
			name:   "отрицательная цена",
			modify: func(req *models.CreatePriceRuleRequest) { req.PricePerSlot = -1.0 },
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
	seedRule(t, repo, 0, "07:00", "17:00", 20.0)
	seedRule(t, repo, 0, "17:00", "23:00", 30.0)

	resp, err := svc.ListByCourt(context.Background(), testCourtID)

	require.NoError(t, err)
	assert.Len(t, resp.PriceRules, 2)
}

func TestListByCourt_Empty(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.ListByCourt(context.Background(), testCourtID)

	require.NoError(t, err)
	assert.Empty(t, resp.PriceRules)
}

func TestUpdate_Success(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0, "07:00", "17:00", 20.0)

	resp, err := svc.Update(context.Background(), rule.ID, &models.UpdatePriceRuleRequest{
		ActorID:      testOwnerID,
		PricePerSlot: ptr.Ptr(35.5),
	})

	require.NoError(t, err)
	assert.Equal(t, 35.5, resp.PricePerSlot)
	assert.Equal(t, "07:00", resp.StartTime)

	stored, err := repo.GetByID(context.Background(), rule.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.5, stored.PricePerSlot)
}

func TestUpdate_OverlapExcludesSelf(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0, "07:00", "17:00", 20.0)

	// Сдвиг границы внутри собственного интервала не считается пересечением
	resp, err := svc.Update(context.Background(), rule.ID, &models.UpdatePriceRuleRequest{
		ActorID: testOwnerID,
		EndTime: ptr.Ptr("15:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "15:00", resp.EndTime)
}

func TestUpdate_OverlapWithOtherRule(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0, "07:00", "12:00", 20.0)
	seedRule(t, repo, 0, "12:00", "17:00", 30.0)

	_, err := svc.Update(context.Background(), rule.ID, &models.UpdatePriceRuleRequest{
		ActorID: testOwnerID,
		EndTime: ptr.Ptr("13:00"),
	})

	assert.ErrorIs(t, err, ErrPriceRuleOverlap)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), 404, &models.UpdatePriceRuleRequest{
		ActorID:      testOwnerID,
		PricePerSlot: ptr.Ptr(10.0),
	})

	assert.ErrorIs(t, err, ErrPriceRuleNotFound)
}

func TestUpdate_NotOwner(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0, "07:00", "17:00", 20.0)

	_, err := svc.Update(context.Background(), rule.ID, &models.UpdatePriceRuleRequest{
		ActorID:      testOtherID,
		PricePerSlot: ptr.Ptr(10.0),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_InvalidInput(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0, "07:00", "17:00", 20.0)

	_, err := svc.Update(context.Background(), rule.ID, &models.UpdatePriceRuleRequest{
		ActorID:   testOwnerID,
		StartTime: ptr.Ptr("18:00"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_Success(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0, "07:00", "17:00", 20.0)

	err := svc.Delete(context.Background(), rule.ID, testOwnerID)

	require.NoError(t, err)
	_, err = repo.GetByID(context.Background(), rule.ID)
	assert.ErrorIs(t, err, priceRepo.ErrPriceRuleNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(context.Background(), 404, testOwnerID)

	assert.ErrorIs(t, err, ErrPriceRuleNotFound)
}

func TestDelete_NotOwner(t *testing.T) {
	svc, repo, _ := newTestService()
	rule := seedRule(t, repo, 0, "07:00", "17:00", 20.0)

	err := svc.Delete(context.Background(), rule.ID, testOtherID)

	assert.ErrorIs(t, err, ErrAccessDenied)
}
