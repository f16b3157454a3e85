package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// StatusPending - бронь создана, ждем оплату в пределах окна блокировки
	StatusPending BookingStatus = "pending"
	// StatusConfirmed - оплата подтверждена платежным шлюзом
	StatusConfirmed BookingStatus = "confirmed"
	// StatusCancelled - отменена пользователем или площадкой до подтверждения
	StatusCancelled BookingStatus = "cancelled"
	// StatusExpired - окно оплаты истекло, переведена фоновой зачисткой
	StatusExpired BookingStatus = "expired"
	// StatusFailed - платеж отклонен шлюзом
	StatusFailed BookingStatus = "failed"
)

// CancelActor identifies who initiated a cancellation
type CancelActor string

const (
	CancelActorUser    CancelActor = "user"
	CancelActorVenue   CancelActor = "venue"
	CancelActorPayment CancelActor = "payment"
	CancelActorSystem  CancelActor = "system"
)

// Booking represents a slot reservation in the system.
// Идентичность слота (resource_id, booking_date, start_time, end_time) не
// является отдельной сущностью: слоты выводятся из конфигурации на лету.
type Booking struct {
	ID         int64
	Reference  string // внешний идентификатор брони ("BK-<uuid>"), он же holder token блокировки
	UserID     int64
	VenueID    int64
	ResourceID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	VenueName     string
	ResourceName  string
	CustomerName  *string
	CustomerPhone *string

	// Price breakdown, зафиксированный на момент создания брони
	Currency           string
	Subtotal           decimal.Decimal // стоимость слота по правилам цен
	PlatformFeePercent decimal.Decimal
	PlatformFee        decimal.Decimal
	OnlineAmount       decimal.Decimal // оплачивается онлайн при бронировании
	VenueAmount        decimal.Decimal // оплачивается на площадке
	TotalAmount        decimal.Decimal
	AppliedRuleID      *int64 // правило цены, задавшее тариф (nil = базовый тариф)

	ClientRequestID *string // ключ идемпотентности клиента
	PaymentRef      *string // ссылка на платеж в шлюзе (после подтверждения)

	CancelledBy        *CancelActor
	CancellationReason *string

	HoldExpiresAt time.Time // конец окна оплаты
	ConfirmedAt   *time.Time
	CancelledAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTerminal returns true if the booking is in a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusConfirmed ||
		b.Status == StatusCancelled ||
		b.Status == StatusExpired ||
		b.Status == StatusFailed
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending
}

// IsCancelled returns true if the booking has been cancelled or failed
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled || b.Status == StatusFailed
}

// HoldLapsed returns true if a pending booking has outlived its payment window
func (b *Booking) HoldLapsed(now time.Time) bool {
	return b.Status == StatusPending && !b.HoldExpiresAt.After(now)
}

// IsBlocking reports whether the booking makes its slot unavailable at the
// given moment. Pending брони блокируют слот только в пределах окна оплаты:
// после его истечения слот снова доступен, не дожидаясь фоновой зачистки.
func (b *Booking) IsBlocking(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusPending:
		return b.HoldExpiresAt.After(now)
	default:
		return false
	}
}

// SlotKey returns the identity of the slot this booking occupies
func (b *Booking) SlotKey() SlotKey {
	return NewSlotKey(b.ResourceID, b.BookingDate, b.StartTime, b.EndTime)
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64          // Обязательный параметр
	ResourceID      *int64         // Фильтр по ресурсу (опционально, если nil - все ресурсы)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершенные брони (отмененные, истекшие)
}
