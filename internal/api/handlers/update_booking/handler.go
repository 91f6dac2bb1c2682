package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/canchub/court-booking-service/internal/api/handlers"
	updateBooking "github.com/canchub/court-booking-service/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidDatetime    = "некорректный формат даты-времени, ожидается RFC 3339"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "нет прав на перенос этого бронирования"
	msgNotReschedulable   = "бронирование нельзя перенести"
	msgNoSchedule         = "площадка не работает в этот день"
	msgInvalidWindow      = "окно нарушает расписание площадки"
	msgWindowInPast       = "бронирование должно начинаться в будущем"
	msgWindowTaken        = "выбранное окно уже занято"
	msgPricingGap         = "на часть окна не задана цена"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, actor_id=%d", bookingID, req.ActorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateBooking.ErrNotReschedulable):
			h.logger.Warn("PUT /bookings/{id} - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, updateBooking.ErrWindowTaken):
			h.logger.Warn("PUT /bookings/{id} - Window taken: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgWindowTaken)

		case errors.Is(err, updateBooking.ErrNoSchedule):
			h.logger.Warn("PUT /bookings/{id} - No schedule: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNoSchedule)

		case errors.Is(err, updateBooking.ErrWindowInPast):
			h.logger.Warn("PUT /bookings/{id} - Window in past: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgWindowInPast)

		case errors.Is(err, updateBooking.ErrInvalidWindow):
			h.logger.Warn("PUT /bookings/{id} - Invalid window: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, updateBooking.ErrPricingGap):
			h.logger.Warn("PUT /bookings/{id} - Pricing gap: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgPricingGap)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking rescheduled: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
