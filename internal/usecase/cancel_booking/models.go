package cancel_booking

import (
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
)

// Request модель запроса отмены бронирования
type Request struct {
	BookingID int64              // ID бронирования
	Actor     domain.CancelActor // Инициатор отмены: user, venue или payment
	CallerID  int64              // ID инициатора (пользователь или менеджер; 0 для payment)
	Reason    *string            // Причина отмены (опционально)
}

// Response модель ответа с отмененной бронью
type Response struct {
	ID        int64
	Reference string
	Status    string

	CancelledBy        *domain.CancelActor
	CancellationReason *string
	CancelledAt        *time.Time

	// AlreadyCancelled true, если бронь уже была отменена ранее
	AlreadyCancelled bool
}
