package delete_price_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/pricerules"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidRuleID  = "некорректный ID правила цены"
	msgUnauthorized   = "требуется авторизация"
	msgVenueNotFound  = "площадка не найдена"
	msgRuleNotFound   = "правило цены не найдено"
	msgAccessDenied   = "доступно только менеджерам площадки"
)

type Handler struct {
	service PriceRuleService
	logger  Logger
}

func NewHandler(service PriceRuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/venues/{venueId}/price-rules/{ruleId}
// Правило выключается (soft delete): зафиксированные в бронях цены не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /venues/{venueId}/price-rules/{ruleId} - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /venues/{venueId}/price-rules/{ruleId} - Invalid rule ID: %s", vars["ruleId"])
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.Disable(r.Context(), ruleID, venueID, userID); err != nil {
		switch {
		case errors.Is(err, pricerules.ErrRuleNotFound):
			h.logger.Warn("DELETE /venues/{venueId}/price-rules/{ruleId} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, pricerules.ErrVenueNotFound):
			h.logger.Warn("DELETE /venues/{venueId}/price-rules/{ruleId} - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, pricerules.ErrAccessDenied):
			h.logger.Warn("DELETE /venues/{venueId}/price-rules/{ruleId} - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /venues/{venueId}/price-rules/{ruleId} - Failed: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /venues/{venueId}/price-rules/{ruleId} - Rule disabled: rule_id=%d, venue_id=%d", ruleID, venueID)
	w.WriteHeader(http.StatusNoContent)
}
