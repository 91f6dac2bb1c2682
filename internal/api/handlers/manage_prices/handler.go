package manage_prices

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/canchub/court-booking-service/internal/api/handlers"
	"github.com/canchub/court-booking-service/internal/service/prices"
	"github.com/canchub/court-booking-service/internal/service/prices/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCourtID     = "некорректный ID площадки"
	msgInvalidRuleID      = "некорректный ID правила цены"
	msgInvalidActorID     = "некорректный параметр actorId"
	msgRuleNotFound       = "правило цены не найдено"
	msgRuleOverlap        = "интервал пересекается с существующим правилом цены"
	msgCourtNotFound      = "площадка не найдена"
	msgAccessDenied       = "управлять ценами может только владелец клуба"
	msgInvalidRule        = "некорректные параметры правила цены"
)

type Handler struct {
	service PricesService
	logger  Logger
}

func NewHandler(service PricesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/courts/{id}/prices
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req models.CreatePriceRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/prices - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CourtID = courtID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /courts/{id}/prices", err)
		return
	}

	h.logger.Info("POST /courts/{id}/prices - Price rule created: rule_id=%d, court_id=%d", result.ID, courtID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/courts/{id}/prices
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	result, err := h.service.ListByCourt(r.Context(), courtID)
	if err != nil {
		h.respondServiceError(w, "GET /courts/{id}/prices", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/prices/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	var req models.UpdatePriceRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /prices/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), ruleID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /prices/{id}", err)
		return
	}

	h.logger.Info("PUT /prices/{id} - Price rule updated: rule_id=%d", ruleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/prices/{id}?actorId=
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	actorID, err := strconv.ParseInt(r.URL.Query().Get("actorId"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidActorID)
		return
	}

	if err := h.service.Delete(r.Context(), ruleID, actorID); err != nil {
		h.respondServiceError(w, "DELETE /prices/{id}", err)
		return
	}

	h.logger.Info("DELETE /prices/{id} - Price rule deleted: rule_id=%d", ruleID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, prices.ErrPriceRuleNotFound):
		h.logger.Warn("%s - Price rule not found: %v", op, err)
		handlers.RespondNotFound(w, msgRuleNotFound)

	case errors.Is(err, prices.ErrCourtNotFound):
		h.logger.Warn("%s - Court not found: %v", op, err)
		handlers.RespondNotFound(w, msgCourtNotFound)

	case errors.Is(err, prices.ErrPriceRuleOverlap):
		h.logger.Warn("%s - Price rule overlap: %v", op, err)
		handlers.RespondConflict(w, msgRuleOverlap)

	case errors.Is(err, prices.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: %v", op, err)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, prices.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRule)

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
