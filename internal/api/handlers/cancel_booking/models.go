package cancel_booking

import (
	"time"

	cancelBooking "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	// Actor инициатор отмены: "user" (владелец брони) или "venue" (менеджер площадки).
	// По умолчанию "user".
	Actor  string  `json:"actor,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		ID:                 resp.ID,
		Reference:          resp.Reference,
		Status:             resp.Status,
		CancellationReason: resp.CancellationReason,
	}

	if resp.CancelledBy != nil {
		cancelledBy := string(*resp.CancelledBy)
		out.CancelledBy = &cancelledBy
	}
	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}

	return out
}
