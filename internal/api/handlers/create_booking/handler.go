package create_booking

import (
	"errors"
	"net/http"

	"github.com/canchub/court-booking-service/internal/api/handlers"
	createBooking "github.com/canchub/court-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDatetime    = "некорректный формат даты-времени, ожидается RFC 3339"
	msgCourtNotFound      = "площадка не найдена"
	msgNoSchedule         = "площадка не работает в этот день"
	msgInvalidWindow      = "окно нарушает расписание площадки"
	msgWindowInPast       = "бронирование должно начинаться в будущем"
	msgWindowTaken        = "выбранное окно уже занято"
	msgPricingGap         = "на часть окна не задана цена"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrWindowTaken):
			h.logger.Warn("POST /bookings - Window taken: user_id=%d, court_id=%d", req.UserID, req.CourtID)
			handlers.RespondConflict(w, msgWindowTaken)

		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrNoSchedule):
			h.logger.Warn("POST /bookings - No schedule: court_id=%d", req.CourtID)
			handlers.RespondBadRequest(w, msgNoSchedule)

		case errors.Is(err, createBooking.ErrWindowInPast):
			h.logger.Warn("POST /bookings - Window in past: user_id=%d, court_id=%d", req.UserID, req.CourtID)
			handlers.RespondBadRequest(w, msgWindowInPast)

		case errors.Is(err, createBooking.ErrInvalidWindow):
			h.logger.Warn("POST /bookings - Invalid window: user_id=%d, court_id=%d: %v", req.UserID, req.CourtID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, createBooking.ErrPricingGap):
			h.logger.Warn("POST /bookings - Pricing gap: court_id=%d", req.CourtID)
			handlers.RespondBadRequest(w, msgPricingGap)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, court_id=%d, error=%v",
				req.UserID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, court_id=%d",
		result.ID, req.UserID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
