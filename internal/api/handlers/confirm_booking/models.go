package confirm_booking

import (
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	confirmBooking "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/confirm_booking"
)

// ConfirmBookingRequest тело запроса подтверждения оплаты
type ConfirmBookingRequest struct {
	PaymentRef string `json:"paymentRef"`
}

// ConfirmBookingResponse ответ с подтвержденной бронью
type ConfirmBookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`

	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`

	PaymentRef  *string    `json:"paymentRef,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`

	AlreadyConfirmed bool `json:"alreadyConfirmed"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP-модель
func FromUseCaseResponse(r *confirmBooking.Response) *ConfirmBookingResponse {
	return &ConfirmBookingResponse{
		ID:        r.ID,
		Reference: r.Reference,
		Status:    r.Status,

		BookingDate: r.BookingDate.Format(domain.DateFormat),
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),

		PaymentRef:  r.PaymentRef,
		ConfirmedAt: r.ConfirmedAt,

		AlreadyConfirmed: r.AlreadyConfirmed,
	}
}
