package create_price_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/pricerules"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/pricerules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVenueID     = "некорректный ID площадки"
	msgUnauthorized       = "требуется авторизация"
	msgVenueNotFound      = "площадка не найдена"
	msgResourceNotFound   = "ресурс не найден"
	msgAccessDenied       = "доступно только менеджерам площадки"
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

// Handle POST /api/v1/venues/{venueId}/price-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{venueId}/price-rules - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	var req models.CreatePriceRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{venueId}/price-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.VenueID = venueID
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, pricerules.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{venueId}/price-rules - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, pricerules.ErrResourceNotFound):
			h.logger.Warn("POST /venues/{venueId}/price-rules - Resource not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, pricerules.ErrAccessDenied):
			h.logger.Warn("POST /venues/{venueId}/price-rules - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, pricerules.ErrInvalidInput):
			h.logger.Warn("POST /venues/{venueId}/price-rules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /venues/{venueId}/price-rules - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{venueId}/price-rules - Rule created: rule_id=%d, venue_id=%d", result.ID, venueID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
