package domain

import "time"

// Default configuration values
const (
	DefaultSlotDurationMinutes     = 60
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
	DefaultCurrency                = "RUB"
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 15
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinNoticeMinutes            = 0
	MaxNoticeMinutes            = 10080 // 1 week
	MaxPriceRulePriority        = 1000
	MaxPriceRuleNameLength      = 200
	MaxDisableReasonLength      = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultWeekendDays выходные по умолчанию, если площадка не настроила свои
var DefaultWeekendDays = []int{int(time.Saturday), int(time.Sunday)}

// ActiveStatuses список статусов, при которых бронь занимает слот
// (pending учитывается только в пределах окна оплаты, см. Booking.IsBlocking)
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses список завершенных статусов
// Используется для фильтрации при выборках бронирований
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusExpired,
	StatusFailed,
}
