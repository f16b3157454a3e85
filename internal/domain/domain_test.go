package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/ptr"
)

func TestBookingIsBlocking(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

	confirmed := &Booking{Status: StatusConfirmed, HoldExpiresAt: now.Add(-time.Hour)}
	assert.True(t, confirmed.IsBlocking(now), "confirmed блокирует слот независимо от окна оплаты")

	pendingLive := &Booking{Status: StatusPending, HoldExpiresAt: now.Add(5 * time.Minute)}
	assert.True(t, pendingLive.IsBlocking(now))

	pendingLapsed := &Booking{Status: StatusPending, HoldExpiresAt: now.Add(-time.Second)}
	assert.False(t, pendingLapsed.IsBlocking(now), "pending с истекшим окном не блокирует слот")
	assert.True(t, pendingLapsed.HoldLapsed(now))

	cancelled := &Booking{Status: StatusCancelled, HoldExpiresAt: now.Add(time.Hour)}
	assert.False(t, cancelled.IsBlocking(now))

	expired := &Booking{Status: StatusExpired}
	assert.False(t, expired.IsBlocking(now))
}

func TestBookingCanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusExpired}).CanBeCancelled())
}

func TestSlotKeyString(t *testing.T) {
	date := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	key := NewSlotKey(42, date, "07:00", "08:00")

	assert.Equal(t, "res:42:2026-02-15:07:00-08:00", key.String())

	// Идентичность детерминирована: одинаковые компоненты - одинаковый ключ
	same := NewSlotKey(42, date.Add(3*time.Hour), "07:00", "08:00")
	assert.Equal(t, key, same)
}

func TestPriceRuleCovers(t *testing.T) {
	rule := &PriceRule{StartTime: "18:00", EndTime: "22:00"}

	assert.True(t, rule.Covers("18:00", "19:00"))
	assert.True(t, rule.Covers("21:00", "22:00"))
	assert.True(t, rule.Covers("18:00", "22:00"))

	// Частичное пересечение не считается
	assert.False(t, rule.Covers("17:00", "19:00"))
	assert.False(t, rule.Covers("21:30", "22:30"))
	assert.False(t, rule.Covers("17:00", "18:00"))
}

func TestPriceRuleAppliesToDate(t *testing.T) {
	saturday := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	weekend := &PriceRule{DayType: DayTypeWeekend, Enabled: true}
	assert.True(t, weekend.AppliesToDate(saturday, true))
	assert.False(t, weekend.AppliesToDate(monday, false))

	weekday := &PriceRule{DayType: DayTypeWeekday, Enabled: true}
	assert.False(t, weekday.AppliesToDate(saturday, true))
	assert.True(t, weekday.AppliesToDate(monday, false))

	pinned := &PriceRule{DayType: DayTypeWeekday, OnDate: ptr.Ptr(saturday), Enabled: true}
	assert.True(t, pinned.AppliesToDate(saturday, true), "привязка к дате перекрывает DayType")
	assert.False(t, pinned.AppliesToDate(monday, false))

	disabled := &PriceRule{DayType: DayTypeAll, Enabled: false}
	assert.False(t, disabled.AppliesToDate(monday, false))
}

func TestDisabledSlotOverlaps(t *testing.T) {
	block := &DisabledSlot{StartTime: "10:00", EndTime: "12:00"}

	assert.True(t, block.Overlaps("10:00", "11:00"))
	assert.True(t, block.Overlaps("11:30", "12:30"))
	assert.True(t, block.Overlaps("09:00", "13:00"))

	// Граничащие интервалы не пересекаются
	assert.False(t, block.Overlaps("09:00", "10:00"))
	assert.False(t, block.Overlaps("12:00", "13:00"))
}

func TestSlotConfigIsWeekend(t *testing.T) {
	saturday := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)

	cfg := &SlotConfig{}
	assert.True(t, cfg.IsWeekend(saturday), "без настройки действуют выходные по умолчанию")
	assert.False(t, cfg.IsWeekend(friday))

	// Площадка с выходным в пятницу
	cfg = &SlotConfig{WeekendDays: []int{int(time.Friday)}}
	assert.True(t, cfg.IsWeekend(friday))
	assert.False(t, cfg.IsWeekend(saturday))
}

func TestSlotConfigHasValidWindow(t *testing.T) {
	ok := &SlotConfig{OpeningTime: "06:00", ClosingTime: "23:00", SlotDurationMinutes: 60}
	assert.True(t, ok.HasValidWindow())

	inverted := &SlotConfig{OpeningTime: "23:00", ClosingTime: "06:00", SlotDurationMinutes: 60}
	assert.False(t, inverted.HasValidWindow())

	equal := &SlotConfig{OpeningTime: "10:00", ClosingTime: "10:00", SlotDurationMinutes: 60}
	assert.False(t, equal.HasValidWindow())

	zeroDuration := &SlotConfig{OpeningTime: "06:00", ClosingTime: "23:00"}
	assert.False(t, zeroDuration.HasValidWindow())
}

func TestSlotConfigHasWeekendPricing(t *testing.T) {
	none := &SlotConfig{}
	assert.False(t, none.HasWeekendPricing())

	mult := decimal.NewFromFloat(1.2)
	with := &SlotConfig{WeekendMultiplier: &mult}
	assert.True(t, with.HasWeekendPricing())
}
