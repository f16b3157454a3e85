package list_disabled_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/disabledslots"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/disabledslots/models"
)

const (
	msgInvalidVenueID    = "некорректный ID площадки"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidFromDate   = "некорректный параметр from, ожидается формат YYYY-MM-DD"
	msgInvalidToDate     = "некорректный параметр to, ожидается формат YYYY-MM-DD"
	msgUnauthorized      = "требуется авторизация"
	msgVenueNotFound     = "площадка не найдена"
	msgAccessDenied      = "доступно только менеджерам площадки"
)

type Handler struct {
	service DisabledSlotService
	logger  Logger
}

func NewHandler(service DisabledSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/resources/{resourceId}/disabled-slots?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{venueId}/resources/{resourceId}/disabled-slots - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{venueId}/resources/{resourceId}/disabled-slots - Invalid resource ID: %s", vars["resourceId"])
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	req := &models.ListDisabledSlotsRequest{
		UserID:     userID,
		VenueID:    venueID,
		ResourceID: resourceID,
	}

	query := r.URL.Query()

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFromDate)
			return
		}
		req.From = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidToDate)
			return
		}
		req.To = &to
	}

	result, err := h.service.ListByResource(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, disabledslots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{venueId}/resources/{resourceId}/disabled-slots - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, disabledslots.ErrAccessDenied):
			h.logger.Warn("GET /venues/{venueId}/resources/{resourceId}/disabled-slots - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /venues/{venueId}/resources/{resourceId}/disabled-slots - Failed: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{venueId}/resources/{resourceId}/disabled-slots - OK: resource_id=%d, total=%d", resourceID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
