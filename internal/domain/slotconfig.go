package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// SlotConfig represents the slot derivation settings for venue resources.
// Supports hierarchical configuration:
// 1. Resource-specific (venue_id, resource_id)
// 2. Venue-wide (venue_id, NULL)
type SlotConfig struct {
	ID         int64
	VenueID    int64
	ResourceID *int64 // NULL = config for all resources of the venue

	OpeningTime         types.TimeString
	ClosingTime         types.TimeString
	SlotDurationMinutes int

	BasePrice         decimal.Decimal
	WeekendMultiplier *decimal.Decimal // nil = выходные по базовому тарифу
	WeekendDays       []int            // дни недели time.Weekday, по умолчанию суббота и воскресенье

	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int

	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsVenueDefault returns true if this is a venue-wide configuration
func (c *SlotConfig) IsVenueDefault() bool {
	return c.ResourceID == nil
}

// IsResourceSpecific returns true if this configuration overrides a single resource
func (c *SlotConfig) IsResourceSpecific() bool {
	return c.ResourceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *SlotConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// HasValidWindow returns true if the working window can produce slots
func (c *SlotConfig) HasValidWindow() bool {
	return c.SlotDurationMinutes > 0 && c.OpeningTime.IsBefore(c.ClosingTime)
}

// IsWeekend reports whether the date falls on a configured weekend day
func (c *SlotConfig) IsWeekend(date time.Time) bool {
	days := c.WeekendDays
	if len(days) == 0 {
		days = DefaultWeekendDays
	}

	weekday := int(date.Weekday())
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

// HasWeekendPricing returns true if a weekend multiplier is configured
func (c *SlotConfig) HasWeekendPricing() bool {
	return c.WeekendMultiplier != nil && !c.WeekendMultiplier.IsZero()
}
