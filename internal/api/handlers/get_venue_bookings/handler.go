package get_venue_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/bookings"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/bookings/models"
)

const (
	msgInvalidVenueID    = "некорректный ID площадки"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
	msgUnauthorized      = "требуется авторизация"
	msgVenueNotFound     = "площадка не найдена"
	msgAccessDenied      = "доступно только менеджерам площадки"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/bookings?resourceId=&startDate=&endDate=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{venueId}/bookings - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	req := &models.GetVenueBookingsRequest{
		UserID:  userID,
		VenueID: venueID,
	}

	query := r.URL.Query()

	if resourceParam := query.Get("resourceId"); resourceParam != "" {
		resourceID, err := strconv.ParseInt(resourceParam, 10, 64)
		if err != nil {
			h.logger.Warn("GET /venues/{venueId}/bookings - Invalid resource ID: %s", resourceParam)
			handlers.RespondBadRequest(w, msgInvalidResourceID)
			return
		}
		req.ResourceID = &resourceID
	}

	if startParam := query.Get("startDate"); startParam != "" {
		startDate, err := time.Parse(domain.DateFormat, startParam)
		if err != nil {
			h.logger.Warn("GET /venues/{venueId}/bookings - Invalid start date: %s", startParam)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endParam := query.Get("endDate"); endParam != "" {
		endDate, err := time.Parse(domain.DateFormat, endParam)
		if err != nil {
			h.logger.Warn("GET /venues/{venueId}/bookings - Invalid end date: %s", endParam)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetVenueBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{venueId}/bookings - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /venues/{venueId}/bookings - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /venues/{venueId}/bookings - Invalid filter: venue_id=%d", venueID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /venues/{venueId}/bookings - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{venueId}/bookings - OK: venue_id=%d, user_id=%d, total=%d", venueID, userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
