package confirm_booking

import (
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// Request модель запроса подтверждения оплаты
type Request struct {
	BookingID  int64  // ID бронирования
	PaymentRef string // Ссылка на платеж в платежном шлюзе
}

// Response модель ответа с подтвержденной бронью
type Response struct {
	ID        int64
	Reference string
	Status    string

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	PaymentRef  *string
	ConfirmedAt *time.Time

	// AlreadyConfirmed true, если запрос - идемпотентный повтор
	AlreadyConfirmed bool
}
