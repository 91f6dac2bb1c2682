package expire_bookings

import (
	"net/http"

	"github.com/canchub/court-booking-service/internal/api/handlers"
)

type Handler struct {
	useCase ExpireBookingsUseCase
	logger  Logger
}

func NewHandler(useCase ExpireBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// ExpireResponse результат ручного запуска экспирации
type ExpireResponse struct {
	Expired int `json:"expired"`
}

// Handle POST /api/v1/admin/bookings/expire
// Запускает экспирацию просроченных PENDING бронирований вне расписания sweep'а
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	expired, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/bookings/expire - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/bookings/expire - Expired %d bookings", expired)
	handlers.RespondJSON(w, http.StatusOK, &ExpireResponse{Expired: expired})
}
