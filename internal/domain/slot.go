package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// SlotStatus represents the availability state of a derived slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusDisabled  SlotStatus = "disabled"
	SlotStatusHeld      SlotStatus = "held"
)

// GeneratedSlot represents a single bookable interval derived from a slot
// configuration. Slots are never stored: they are recomputed on demand.
type GeneratedSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	DisplayOrder    int
}

// Key returns the slot identity for the given resource and date
func (s GeneratedSlot) Key(resourceID int64, date time.Time) SlotKey {
	return NewSlotKey(resourceID, date, s.StartTime, s.EndTime)
}

// SlotView represents a generated slot projected against bookings, disabled
// windows and soft locks
type SlotView struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	DisplayOrder    int

	Status SlotStatus
	Reason *string // заполнен для disabled/held слотов

	// Цена заполняется только для доступных слотов
	Price         *decimal.Decimal
	AppliedRuleID *int64
}

// IsAvailable returns true if the slot can be reserved
func (v *SlotView) IsAvailable() bool {
	return v.Status == SlotStatusAvailable
}

// SlotKey identifies a slot without storing it: resource, date and window.
// Каноничная строковая форма используется как ключ мягкой блокировки.
type SlotKey struct {
	ResourceID int64
	Date       string // YYYY-MM-DD
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// NewSlotKey builds a slot identity from its components
func NewSlotKey(resourceID int64, date time.Time, start, end types.TimeString) SlotKey {
	return SlotKey{
		ResourceID: resourceID,
		Date:       date.Format(DateFormat),
		StartTime:  start,
		EndTime:    end,
	}
}

// String returns the canonical form "res:<id>:<date>:<start>-<end>"
func (k SlotKey) String() string {
	return fmt.Sprintf("res:%d:%s:%s-%s", k.ResourceID, k.Date, k.StartTime, k.EndTime)
}
