package reserve_slot

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// Request модель запроса на резервирование слота
type Request struct {
	UserID     int64            // ID пользователя
	VenueID    int64            // ID площадки
	ResourceID int64            // ID ресурса (корт, поле, зал)
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Начало слота (например, "10:00")
	EndTime    types.TimeString // Конец слота (например, "11:00")

	ClientRequestID *string // Ключ идемпотентности клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64  // ID бронирования
	Reference  string // Внешний идентификатор брони ("BK-<uuid>")
	UserID     int64
	VenueID    int64
	ResourceID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные
	VenueName     string
	ResourceName  string
	CustomerName  *string
	CustomerPhone *string

	// Денежная разбивка, зафиксированная на момент создания
	Currency           string
	Subtotal           decimal.Decimal
	PlatformFeePercent decimal.Decimal
	PlatformFee        decimal.Decimal
	OnlineAmount       decimal.Decimal
	VenueAmount        decimal.Decimal
	TotalAmount        decimal.Decimal
	AppliedRuleID      *int64

	HoldExpiresAt time.Time // конец окна оплаты
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// AlreadyExists true, если запрос - идемпотентный повтор
	// и возвращена ранее созданная бронь
	AlreadyExists bool
}
