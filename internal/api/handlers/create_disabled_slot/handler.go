package create_disabled_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/disabledslots"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/disabledslots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgUnauthorized       = "требуется авторизация"
	msgVenueNotFound      = "площадка не найдена"
	msgResourceNotFound   = "ресурс не найден"
	msgAccessDenied       = "доступно только менеджерам площадки"
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

// Handle POST /api/v1/venues/{venueId}/resources/{resourceId}/disabled-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{venueId}/resources/{resourceId}/disabled-slots - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{venueId}/resources/{resourceId}/disabled-slots - Invalid resource ID: %s", vars["resourceId"])
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var req models.CreateDisabledSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{venueId}/resources/{resourceId}/disabled-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.VenueID = venueID
	req.ResourceID = resourceID
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, disabledslots.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{venueId}/resources/{resourceId}/disabled-slots - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, disabledslots.ErrResourceNotFound):
			h.logger.Warn("POST /venues/{venueId}/resources/{resourceId}/disabled-slots - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, disabledslots.ErrAccessDenied):
			h.logger.Warn("POST /venues/{venueId}/resources/{resourceId}/disabled-slots - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, disabledslots.ErrInvalidInput):
			h.logger.Warn("POST /venues/{venueId}/resources/{resourceId}/disabled-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /venues/{venueId}/resources/{resourceId}/disabled-slots - Failed: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{venueId}/resources/{resourceId}/disabled-slots - Slot disabled: slot_id=%d, resource_id=%d", result.ID, resourceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
