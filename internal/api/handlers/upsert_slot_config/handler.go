package upsert_slot_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/slotconfigs"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/slotconfigs/models"
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
	service SlotConfigService
	logger  Logger
}

func NewHandler(service SlotConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/venues/{venueId}/slot-configs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /venues/{venueId}/slot-configs - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	var req models.UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{venueId}/slot-configs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// ID площадки и пользователя берутся из пути и заголовка, не из тела
	req.VenueID = venueID
	req.UserID = userID

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slotconfigs.ErrVenueNotFound):
			h.logger.Warn("PUT /venues/{venueId}/slot-configs - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, slotconfigs.ErrResourceNotFound):
			h.logger.Warn("PUT /venues/{venueId}/slot-configs - Resource not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, slotconfigs.ErrAccessDenied):
			h.logger.Warn("PUT /venues/{venueId}/slot-configs - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, slotconfigs.ErrInvalidInput):
			h.logger.Warn("PUT /venues/{venueId}/slot-configs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /venues/{venueId}/slot-configs - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{venueId}/slot-configs - Config saved: config_id=%d, venue_id=%d", result.ID, venueID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
