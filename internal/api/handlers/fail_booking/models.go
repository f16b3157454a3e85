package fail_booking

import (
	"time"

	cancelBooking "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/cancel_booking"
)

// FailBookingRequest тело запроса о неуспешной оплате
type FailBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// FailBookingResponse ответ с бронью, переведенной в failed
type FailBookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`

	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	AlreadyCancelled bool `json:"alreadyCancelled"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP-модель
func FromUseCaseResponse(r *cancelBooking.Response) *FailBookingResponse {
	resp := &FailBookingResponse{
		ID:        r.ID,
		Reference: r.Reference,
		Status:    r.Status,

		CancellationReason: r.CancellationReason,
		CancelledAt:        r.CancelledAt,

		AlreadyCancelled: r.AlreadyCancelled,
	}

	if r.CancelledBy != nil {
		actor := string(*r.CancelledBy)
		resp.CancelledBy = &actor
	}

	return resp
}
