package get_court_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/canchub/court-booking-service/internal/api/handlers"
	"github.com/canchub/court-booking-service/internal/service/bookings"
	"github.com/canchub/court-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidCourtID = "некорректный ID площадки"
	msgInvalidActorID = "некорректный параметр actorId"
	msgInvalidPeriod  = "некорректный формат периода, ожидается RFC 3339"
	msgInvalidFilter  = "некорректные параметры фильтрации"
	msgCourtNotFound  = "площадка не найдена"
	msgAccessDenied   = "просматривать бронирования площадки может только владелец клуба"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{id}/bookings?actorId=&from=&to=&status=&onlyBlocking=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/bookings - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	query := r.URL.Query()

	actorID, err := strconv.ParseInt(query.Get("actorId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/bookings - Invalid actor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActorID)
		return
	}

	req := &models.GetCourtBookingsRequest{
		CourtID: courtID,
		ActorID: actorID,
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.To = &to
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}
	if query.Get("onlyBlocking") == "true" {
		req.OnlyBlocking = true
	}

	result, err := h.service.GetCourtBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/bookings - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /courts/{id}/bookings - Access denied: court_id=%d, actor_id=%d", courtID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /courts/{id}/bookings - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
