package slotgen

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

func config(opening, closing string, duration int) *domain.SlotConfig {
	return &domain.SlotConfig{
		VenueID:             1,
		OpeningTime:         types.TimeString(opening),
		ClosingTime:         types.TimeString(closing),
		SlotDurationMinutes: duration,
		BasePrice:           decimal.NewFromInt(1000),
		Enabled:             true,
	}
}

func TestGenerateExactFit(t *testing.T) {
	cfg := config("06:00", "08:00", 60)
	date := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	slots := Generate(cfg, date)

	require.Len(t, slots, 2)
	assert.Equal(t, "06:00", slots[0].StartTime.String())
	assert.Equal(t, "07:00", slots[0].EndTime.String())
	assert.Equal(t, "07:00", slots[1].StartTime.String())
	assert.Equal(t, "08:00", slots[1].EndTime.String())
	assert.Equal(t, 0, slots[0].DisplayOrder)
	assert.Equal(t, 1, slots[1].DisplayOrder)
}

func TestGenerateDropsPartialSlot(t *testing.T) {
	// Закрытие 08:30: третий слот 08:00-09:00 не помещается и отбрасывается
	cfg := config("06:00", "08:30", 60)
	date := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	slots := Generate(cfg, date)

	require.Len(t, slots, 2)
	assert.Equal(t, "07:00", slots[1].StartTime.String())
	assert.Equal(t, "08:00", slots[1].EndTime.String())
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := config("09:00", "21:00", 90)
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first := Generate(cfg, date)
	second := Generate(cfg, date)

	assert.Equal(t, first, second)
	require.Len(t, first, 8)
	assert.Equal(t, "19:30", first[7].StartTime.String())
	assert.Equal(t, "21:00", first[7].EndTime.String())
}

func TestGenerateDisabledConfig(t *testing.T) {
	cfg := config("06:00", "23:00", 60)
	cfg.Enabled = false

	slots := Generate(cfg, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, slots)
}

func TestGenerateInvalidWindow(t *testing.T) {
	date := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	// Открытие равно закрытию
	assert.Empty(t, Generate(config("10:00", "10:00", 60), date))

	// Открытие позже закрытия
	assert.Empty(t, Generate(config("20:00", "08:00", 60), date))

	// Нулевая длительность
	assert.Empty(t, Generate(config("06:00", "23:00", 0), date))
}

func TestGenerateSlotLongerThanWindow(t *testing.T) {
	// Слот длиннее рабочего окна - ни одного слота
	slots := Generate(config("10:00", "11:00", 90), time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, slots)
}

func TestFilterByNotice(t *testing.T) {
	cfg := config("06:00", "12:00", 60)
	date := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	slots := Generate(cfg, date)
	require.Len(t, slots, 6)

	// Сейчас 08:10 того же дня, минимальное уведомление 30 минут:
	// остаются слоты с началом не раньше 08:40, то есть с 09:00
	now := time.Date(2026, 2, 16, 8, 10, 0, 0, time.UTC)
	filtered := FilterByNotice(slots, date, now, 30)

	require.Len(t, filtered, 3)
	assert.Equal(t, "09:00", filtered[0].StartTime.String())

	// Для будущей даты фильтр не применяется
	future := time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC)
	assert.Len(t, FilterByNotice(slots, future, now, 30), 6)
}

func TestFindSlot(t *testing.T) {
	cfg := config("06:00", "09:00", 60)
	slots := Generate(cfg, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC))

	slot, ok := FindSlot(slots, "07:00", "08:00")
	require.True(t, ok)
	assert.Equal(t, 1, slot.DisplayOrder)

	// Произвольное окно, не совпадающее с сеткой - не слот
	_, ok = FindSlot(slots, "07:30", "08:30")
	assert.False(t, ok)

	_, ok = FindSlot(slots, "07:00", "09:00")
	assert.False(t, ok)
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 2, 16, 23, 50, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDateInPast(time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDateInPast(time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC), now))
}
