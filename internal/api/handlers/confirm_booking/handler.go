package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
	confirmBooking "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgHoldExpired        = "время удержания слота истекло, бронирование не может быть подтверждено"
	msgInvalidStatus      = "бронирование не может быть подтверждено в текущем статусе"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/bookings/{id}/confirm
// Вызывается платежным сервисом после успешной оплаты. Повторный вызов
// для уже подтвержденной брони идемпотентен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /internal/bookings/{id}/confirm - Invalid booking ID: %s", vars["id"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/bookings/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		BookingID:  bookingID,
		PaymentRef: req.PaymentRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("POST /internal/bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmBooking.ErrHoldExpired):
			h.logger.Warn("POST /internal/bookings/{id}/confirm - Hold expired: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, handlers.CodeHoldExpired, msgHoldExpired)

		case errors.Is(err, confirmBooking.ErrInvalidStatus):
			h.logger.Warn("POST /internal/bookings/{id}/confirm - Invalid status: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStatus)

		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /internal/bookings/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /internal/bookings/{id}/confirm - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/bookings/{id}/confirm - Booking confirmed: booking_id=%d, already_confirmed=%t",
		result.ID, result.AlreadyConfirmed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
