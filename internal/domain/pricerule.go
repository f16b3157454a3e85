package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// DayType restricts a price rule to a class of dates
type DayType string

const (
	DayTypeAll     DayType = "all"
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
)

// PriceRule represents a pricing override for a time window of a resource.
// Правило применяется к слоту, только если окно правила ПОЛНОСТЬЮ покрывает
// окно слота. При нескольких кандидатах выбор детерминирован: больший
// priority, затем более узкое окно, затем меньший id.
type PriceRule struct {
	ID         int64
	VenueID    int64
	ResourceID int64

	Name    string
	DayType DayType
	OnDate  *time.Time // привязка к конкретной дате, перекрывает DayType

	StartTime types.TimeString
	EndTime   types.TimeString

	BasePrice   *decimal.Decimal // замена базового тарифа (отключает множитель выходного дня)
	ExtraCharge *decimal.Decimal // надбавка поверх тарифа

	Priority int
	Enabled  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesToDate reports whether the rule is active on the given date.
// isWeekend вычисляется по weekend_days конфигурации слотов.
func (r *PriceRule) AppliesToDate(date time.Time, isWeekend bool) bool {
	if !r.Enabled {
		return false
	}

	if r.OnDate != nil {
		y1, m1, d1 := r.OnDate.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}

	switch r.DayType {
	case DayTypeAll:
		return true
	case DayTypeWeekday:
		return !isWeekend
	case DayTypeWeekend:
		return isWeekend
	default:
		return false
	}
}

// Covers reports whether the rule window fully contains the slot window
func (r *PriceRule) Covers(slotStart, slotEnd types.TimeString) bool {
	return !r.StartTime.IsAfter(slotStart) && !r.EndTime.IsBefore(slotEnd)
}

// WindowMinutes returns the rule window length, used to prefer narrower rules
func (r *PriceRule) WindowMinutes() int {
	minutes, err := r.StartTime.MinutesBetween(r.EndTime)
	if err != nil {
		return 0
	}
	return minutes
}
