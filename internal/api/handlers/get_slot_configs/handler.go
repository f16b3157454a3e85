package get_slot_configs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/slotconfigs"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgUnauthorized   = "требуется авторизация"
	msgVenueNotFound  = "площадка не найдена"
	msgAccessDenied   = "доступно только менеджерам площадки"
)

type Handler struct {
	service SlotConfigService
	logger  Logger
}

func NewHandler(service SlotConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/slot-configs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{venueId}/slot-configs - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	result, err := h.service.GetAllByVenue(r.Context(), venueID, userID)
	if err != nil {
		switch {
		case errors.Is(err, slotconfigs.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{venueId}/slot-configs - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, slotconfigs.ErrAccessDenied):
			h.logger.Warn("GET /venues/{venueId}/slot-configs - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /venues/{venueId}/slot-configs - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{venueId}/slot-configs - OK: venue_id=%d, total=%d", venueID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
