package delete_disabled_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/disabledslots"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidSlotID  = "некорректный ID окна блокировки"
	msgUnauthorized   = "требуется авторизация"
	msgVenueNotFound  = "площадка не найдена"
	msgSlotNotFound   = "окно блокировки не найдено"
	msgAccessDenied   = "доступно только менеджерам площадки"
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

// Handle DELETE /api/v1/venues/{venueId}/disabled-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /venues/{venueId}/disabled-slots/{slotId} - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /venues/{venueId}/disabled-slots/{slotId} - Invalid slot ID: %s", vars["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Delete(r.Context(), slotID, venueID, userID); err != nil {
		switch {
		case errors.Is(err, disabledslots.ErrDisabledSlotNotFound):
			h.logger.Warn("DELETE /venues/{venueId}/disabled-slots/{slotId} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, disabledslots.ErrVenueNotFound):
			h.logger.Warn("DELETE /venues/{venueId}/disabled-slots/{slotId} - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, disabledslots.ErrAccessDenied):
			h.logger.Warn("DELETE /venues/{venueId}/disabled-slots/{slotId} - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /venues/{venueId}/disabled-slots/{slotId} - Failed: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /venues/{venueId}/disabled-slots/{slotId} - Slot deleted: slot_id=%d, venue_id=%d", slotID, venueID)
	w.WriteHeader(http.StatusNoContent)
}
