package availability

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/slotgen"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

var (
	testDate = time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC) // понедельник
	testNow  = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
)

func testConfig() *domain.SlotConfig {
	return &domain.SlotConfig{
		VenueID:             1,
		OpeningTime:         "10:00",
		ClosingTime:         "14:00",
		SlotDurationMinutes: 60,
		BasePrice:           decimal.NewFromInt(1000),
		Enabled:             true,
	}
}

func testInput(cfg *domain.SlotConfig) Input {
	return Input{
		Config:     cfg,
		Slots:      slotgen.Generate(cfg, testDate),
		ResourceID: 42,
		Date:       testDate,
		Now:        testNow,
	}
}

func booking(status domain.BookingStatus, start, end types.TimeString, holdExpires time.Time) *domain.Booking {
	return &domain.Booking{
		ResourceID:    42,
		BookingDate:   testDate,
		StartTime:     start,
		EndTime:       end,
		Status:        status,
		HoldExpiresAt: holdExpires,
	}
}

func TestProjectAllAvailable(t *testing.T) {
	in := testInput(testConfig())

	views, err := Project(in)

	require.NoError(t, err)
	require.Len(t, views, 4)
	for _, v := range views {
		assert.Equal(t, domain.SlotStatusAvailable, v.Status)
		require.NotNil(t, v.Price)
		assert.Equal(t, "1000.00", v.Price.StringFixed(2))
		assert.Nil(t, v.Reason)
	}
}

func TestProjectBookedSlot(t *testing.T) {
	in := testInput(testConfig())
	in.Bookings = []*domain.Booking{
		booking(domain.StatusConfirmed, "11:00", "12:00", time.Time{}),
	}

	views, err := Project(in)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusAvailable, views[0].Status) // 10:00-11:00
	assert.Equal(t, domain.SlotStatusBooked, views[1].Status)    // 11:00-12:00
	assert.Equal(t, domain.SlotStatusAvailable, views[2].Status) // 12:00-13:00
	assert.Nil(t, views[1].Price, "у занятого слота цена не заполняется")
}

func TestProjectAdjacentBookingDoesNotBlock(t *testing.T) {
	// Бронь 10:00-11:00 граничит со слотом 11:00-12:00 - это не пересечение
	in := testInput(testConfig())
	in.Bookings = []*domain.Booking{
		booking(domain.StatusConfirmed, "10:00", "11:00", time.Time{}),
	}

	views, err := Project(in)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, views[0].Status)
	assert.Equal(t, domain.SlotStatusAvailable, views[1].Status)
}

func TestProjectPendingBlocksOnlyWithinHold(t *testing.T) {
	in := testInput(testConfig())
	in.Bookings = []*domain.Booking{
		booking(domain.StatusPending, "10:00", "11:00", testNow.Add(5*time.Minute)),  // окно живо
		booking(domain.StatusPending, "11:00", "12:00", testNow.Add(-1*time.Minute)), // окно истекло
	}

	views, err := Project(in)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, views[0].Status)
	assert.Equal(t, domain.SlotStatusAvailable, views[1].Status,
		"pending с истекшим окном оплаты не блокирует слот до зачистки")
}

func TestProjectCancelledBookingIgnored(t *testing.T) {
	in := testInput(testConfig())
	in.Bookings = []*domain.Booking{
		booking(domain.StatusCancelled, "10:00", "11:00", time.Time{}),
		booking(domain.StatusExpired, "11:00", "12:00", time.Time{}),
		booking(domain.StatusFailed, "12:00", "13:00", time.Time{}),
	}

	views, err := Project(in)

	require.NoError(t, err)
	for _, v := range views {
		assert.Equal(t, domain.SlotStatusAvailable, v.Status)
	}
}

func TestProjectDisabledWindow(t *testing.T) {
	in := testInput(testConfig())
	in.Disabled = []*domain.DisabledSlot{
		{ResourceID: 42, SlotDate: testDate, StartTime: "11:30", EndTime: "13:30", Reason: "Замена покрытия", Enabled: true},
	}

	views, err := Project(in)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusAvailable, views[0].Status) // 10:00-11:00
	assert.Equal(t, domain.SlotStatusDisabled, views[1].Status)  // 11:00-12:00 пересекается
	assert.Equal(t, domain.SlotStatusDisabled, views[2].Status)  // 12:00-13:00 внутри окна
	assert.Equal(t, domain.SlotStatusDisabled, views[3].Status)  // 13:00-14:00 пересекается
	require.NotNil(t, views[1].Reason)
	assert.Equal(t, "Замена покрытия", *views[1].Reason)
}

func TestProjectDisabledWindowTurnedOff(t *testing.T) {
	in := testInput(testConfig())
	in.Disabled = []*domain.DisabledSlot{
		{ResourceID: 42, SlotDate: testDate, StartTime: "10:00", EndTime: "14:00", Reason: "x", Enabled: false},
	}

	views, err := Project(in)

	require.NoError(t, err)
	for _, v := range views {
		assert.Equal(t, domain.SlotStatusAvailable, v.Status)
	}
}

func TestProjectHeldSlot(t *testing.T) {
	in := testInput(testConfig())
	key := domain.NewSlotKey(42, testDate, "12:00", "13:00")
	in.HeldKeys = map[string]struct{}{key.String(): {}}

	views, err := Project(in)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusAvailable, views[1].Status)
	assert.Equal(t, domain.SlotStatusHeld, views[2].Status)
	require.NotNil(t, views[2].Reason)
	assert.Equal(t, ReasonTemporarilyReserved, *views[2].Reason)
	assert.Nil(t, views[2].Price)
}

func TestProjectPrecedenceBookedOverDisabledOverHeld(t *testing.T) {
	in := testInput(testConfig())
	in.Bookings = []*domain.Booking{
		booking(domain.StatusConfirmed, "10:00", "11:00", time.Time{}),
	}
	in.Disabled = []*domain.DisabledSlot{
		{ResourceID: 42, SlotDate: testDate, StartTime: "10:00", EndTime: "12:00", Reason: "Ремонт", Enabled: true},
	}
	key := domain.NewSlotKey(42, testDate, "10:00", "11:00")
	in.HeldKeys = map[string]struct{}{
		key.String(): {},
		domain.NewSlotKey(42, testDate, "11:00", "12:00").String(): {},
	}

	views, err := Project(in)

	require.NoError(t, err)
	// Бронь сильнее окна блокировки и мягкой блокировки
	assert.Equal(t, domain.SlotStatusBooked, views[0].Status)
	// Окно блокировки сильнее мягкой блокировки
	assert.Equal(t, domain.SlotStatusDisabled, views[1].Status)
}

func TestProjectEmptySlots(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	in := testInput(cfg)

	views, err := Project(in)

	require.NoError(t, err)
	assert.Empty(t, views)
}
