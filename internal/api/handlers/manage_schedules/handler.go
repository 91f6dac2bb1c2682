package manage_schedules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/canchub/court-booking-service/internal/api/handlers"
	"github.com/canchub/court-booking-service/internal/service/schedules"
	"github.com/canchub/court-booking-service/internal/service/schedules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCourtID     = "некорректный ID площадки"
	msgInvalidScheduleID  = "некорректный ID правила расписания"
	msgInvalidActorID     = "некорректный параметр actorId"
	msgScheduleNotFound   = "правило расписания не найдено"
	msgScheduleExists     = "на этот день недели правило уже задано"
	msgCourtNotFound      = "площадка не найдена"
	msgAccessDenied       = "управлять расписанием может только владелец клуба"
	msgInvalidSchedule    = "некорректные параметры расписания"
)

type Handler struct {
	service SchedulesService
	logger  Logger
}

func NewHandler(service SchedulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/courts/{id}/schedules
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req models.CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CourtID = courtID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /courts/{id}/schedules", err)
		return
	}

	h.logger.Info("POST /courts/{id}/schedules - Schedule created: schedule_id=%d, court_id=%d", result.ID, courtID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/courts/{id}/schedules
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	result, err := h.service.ListByCourt(r.Context(), courtID)
	if err != nil {
		h.respondServiceError(w, "GET /courts/{id}/schedules", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/schedules/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), scheduleID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /schedules/{id}", err)
		return
	}

	h.logger.Info("PUT /schedules/{id} - Schedule updated: schedule_id=%d", scheduleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/schedules/{id}?actorId=
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	actorID, err := strconv.ParseInt(r.URL.Query().Get("actorId"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidActorID)
		return
	}

	if err := h.service.Delete(r.Context(), scheduleID, actorID); err != nil {
		h.respondServiceError(w, "DELETE /schedules/{id}", err)
		return
	}

	h.logger.Info("DELETE /schedules/{id} - Schedule deleted: schedule_id=%d", scheduleID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, schedules.ErrScheduleNotFound):
		h.logger.Warn("%s - Schedule not found: %v", op, err)
		handlers.RespondNotFound(w, msgScheduleNotFound)

	case errors.Is(err, schedules.ErrCourtNotFound):
		h.logger.Warn("%s - Court not found: %v", op, err)
		handlers.RespondNotFound(w, msgCourtNotFound)

	case errors.Is(err, schedules.ErrScheduleAlreadyExists):
		h.logger.Warn("%s - Schedule already exists: %v", op, err)
		handlers.RespondConflict(w, msgScheduleExists)

	case errors.Is(err, schedules.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: %v", op, err)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, schedules.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
