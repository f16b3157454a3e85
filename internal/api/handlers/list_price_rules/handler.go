package list_price_rules

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
	msgUnauthorized   = "требуется авторизация"
	msgVenueNotFound  = "площадка не найдена"
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

// Handle GET /api/v1/venues/{venueId}/price-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{venueId}/price-rules - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	result, err := h.service.ListByVenue(r.Context(), venueID, userID)
	if err != nil {
		switch {
		case errors.Is(err, pricerules.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{venueId}/price-rules - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, pricerules.ErrAccessDenied):
			h.logger.Warn("GET /venues/{venueId}/price-rules - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /venues/{venueId}/price-rules - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{venueId}/price-rules - OK: venue_id=%d, total=%d", venueID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
