package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	reserveSlot "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgUnauthorized       = "требуется авторизация"
	msgVenueNotFound      = "площадка не найдена"
	msgResourceNotFound   = "ресурс не найден"
	msgConfigNotFound     = "конфигурация слотов не найдена"
	msgSlotUnavailable    = "выбранный слот недоступен"
	msgSlotAlreadyLocked  = "слот временно удерживается другим пользователем"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot    = "окно запроса не совпадает со слотом сетки"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Повтор с тем же clientRequestId возвращает 200 с ранее созданной бронью
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if req.BookingDate != "" && len(req.BookingDate) != len("2006-01-02") {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		case errors.Is(err, reserveSlot.ErrSlotAlreadyLocked):
			h.logger.Warn("POST /bookings - Slot locked: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondConflict(w, handlers.CodeSlotAlreadyLocked, msgSlotAlreadyLocked)

		case errors.Is(err, reserveSlot.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, reserveSlot.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, reserveSlot.ErrConfigNotFound):
			h.logger.Warn("POST /bookings - Config not found: venue_id=%d, resource_id=%d", req.VenueID, req.ResourceID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, reserveSlot.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, reserveSlot.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, reserveSlot.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, slot=%s-%s", userID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, reserveSlot.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to reserve slot: user_id=%d, resource_id=%d, error=%v",
				userID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Идемпотентный повтор возвращает 200, свежая бронь - 201
	status := http.StatusCreated
	if result.AlreadyExists {
		status = http.StatusOK
		h.logger.Info("POST /bookings - Idempotent replay: booking_id=%d, user_id=%d", result.ID, userID)
	} else {
		h.logger.Info("POST /bookings - Booking created: booking_id=%d, reference=%s, user_id=%d",
			result.ID, result.Reference, userID)
	}

	handlers.RespondJSON(w, status, response)
}
