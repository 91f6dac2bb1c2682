package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/canchub/court-booking-service/internal/usecase/create_booking"
)

type stubUseCase struct {
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, _ *createBooking.Request) (*createBooking.Response, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"userId": 10,
	"courtId": 5,
	"startDatetime": "2025-06-02T10:00:00Z",
	"endDatetime": "2025-06-02T12:00:00Z"
}`

func doRequest(t *testing.T, uc *stubUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:            42,
		UserID:        10,
		CourtID:       5,
		StartDatetime: start,
		EndDatetime:   start.Add(2 * time.Hour),
		Status:        "PENDING",
		PriceTotal:    50,
		ICSUID:        "uid-1",
	}}

	rec := doRequest(t, uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "2025-06-02T10:00:00Z", resp.StartDatetime)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"window taken", createBooking.ErrWindowTaken, http.StatusConflict},
		{"court not found", createBooking.ErrCourtNotFound, http.StatusNotFound},
		{"no schedule", createBooking.ErrNoSchedule, http.StatusBadRequest},
		{"window in past", createBooking.ErrWindowInPast, http.StatusBadRequest},
		{"invalid window", createBooking.ErrInvalidWindow, http.StatusBadRequest},
		{"pricing gap", createBooking.ErrPricingGap, http.StatusBadRequest},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, `{"userId": "not a number"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDatetime(t *testing.T) {
	body := `{"userId": 10, "courtId": 5, "startDatetime": "02.06.2025 10:00", "endDatetime": "02.06.2025 12:00"}`
	rec := doRequest(t, &stubUseCase{}, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
