package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/canchub/court-booking-service/internal/api/handlers"
	"github.com/canchub/court-booking-service/internal/domain"
	getAvailability "github.com/canchub/court-booking-service/internal/usecase/get_availability"
)

const (
	msgInvalidCourtID = "некорректный ID площадки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{id}/availability?date=2026-08-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		CourtID: courtID,
		Date:    date,
	})
	if err != nil {
		if errors.Is(err, getAvailability.ErrInvalidInput) {
			h.logger.Warn("GET /courts/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCourtID)
			return
		}
		h.logger.Error("GET /courts/{id}/availability - Failed: court_id=%d, error=%v", courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
