package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/ptr"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

var (
	saturday = time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	monday   = time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
)

func baseConfig() *domain.SlotConfig {
	mult := decimal.NewFromFloat(1.2)
	return &domain.SlotConfig{
		VenueID:             1,
		OpeningTime:         "06:00",
		ClosingTime:         "23:00",
		SlotDurationMinutes: 60,
		BasePrice:           decimal.NewFromInt(1000),
		WeekendMultiplier:   &mult,
		Enabled:             true,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveBasePriceOnly(t *testing.T) {
	quote, err := ResolveSlotPrice(baseConfig(), nil, "10:00", "11:00", monday)

	require.NoError(t, err)
	assert.True(t, dec("1000.00").Equal(quote.Price), "got %s", quote.Price)
	assert.Nil(t, quote.AppliedRuleID)
}

func TestResolveWeekendMultiplierWithExtraCharge(t *testing.T) {
	// База 1000, выходной множитель 1.2, правило с надбавкой 200 без своей базы:
	// 1000*1.2 + 200 = 1400.00
	extra := decimal.NewFromInt(200)
	rules := []*domain.PriceRule{
		{
			ID:          1,
			DayType:     domain.DayTypeWeekend,
			StartTime:   "06:00",
			EndTime:     "23:00",
			ExtraCharge: &extra,
			Priority:    10,
			Enabled:     true,
		},
	}

	quote, err := ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", saturday)

	require.NoError(t, err)
	assert.Equal(t, "1400.00", quote.Price.StringFixed(2))
	require.NotNil(t, quote.AppliedRuleID)
	assert.Equal(t, int64(1), *quote.AppliedRuleID)
}

func TestResolveRuleBasePriceSuppressesMultiplier(t *testing.T) {
	// base_price правила отключает множитель выходного дня
	rulePrice := decimal.NewFromInt(1500)
	rules := []*domain.PriceRule{
		{
			ID:        7,
			DayType:   domain.DayTypeAll,
			StartTime: "06:00",
			EndTime:   "23:00",
			BasePrice: &rulePrice,
			Priority:  1,
			Enabled:   true,
		},
	}

	quote, err := ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", saturday)

	require.NoError(t, err)
	assert.Equal(t, "1500.00", quote.Price.StringFixed(2))
}

func TestResolveWeekendWithoutMultiplier(t *testing.T) {
	cfg := baseConfig()
	cfg.WeekendMultiplier = nil

	quote, err := ResolveSlotPrice(cfg, nil, "10:00", "11:00", saturday)

	require.NoError(t, err)
	assert.Equal(t, "1000.00", quote.Price.StringFixed(2))
}

func TestResolveRuleMustCoverSlot(t *testing.T) {
	// Правило 10:30-11:30 не покрывает слот 10:00-11:00 целиком - не применяется
	extra := decimal.NewFromInt(500)
	rules := []*domain.PriceRule{
		{
			ID:          3,
			DayType:     domain.DayTypeAll,
			StartTime:   "10:30",
			EndTime:     "11:30",
			ExtraCharge: &extra,
			Priority:    100,
			Enabled:     true,
		},
	}

	quote, err := ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", monday)

	require.NoError(t, err)
	assert.Equal(t, "1000.00", quote.Price.StringFixed(2))
	assert.Nil(t, quote.AppliedRuleID)
}

func TestResolveTieBreakPriority(t *testing.T) {
	lowPrice := decimal.NewFromInt(900)
	highPrice := decimal.NewFromInt(1800)
	rules := []*domain.PriceRule{
		{ID: 1, DayType: domain.DayTypeAll, StartTime: "06:00", EndTime: "23:00", BasePrice: &lowPrice, Priority: 1, Enabled: true},
		{ID: 2, DayType: domain.DayTypeAll, StartTime: "06:00", EndTime: "23:00", BasePrice: &highPrice, Priority: 50, Enabled: true},
	}

	quote, err := ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", monday)

	require.NoError(t, err)
	require.NotNil(t, quote.AppliedRuleID)
	assert.Equal(t, int64(2), *quote.AppliedRuleID)
	assert.Equal(t, "1800.00", quote.Price.StringFixed(2))
}

func TestResolveTieBreakNarrowerWindow(t *testing.T) {
	// Равный priority: выигрывает более узкое окно
	widePrice := decimal.NewFromInt(1100)
	narrowPrice := decimal.NewFromInt(1300)
	rules := []*domain.PriceRule{
		{ID: 1, DayType: domain.DayTypeAll, StartTime: "06:00", EndTime: "23:00", BasePrice: &widePrice, Priority: 10, Enabled: true},
		{ID: 2, DayType: domain.DayTypeAll, StartTime: "09:00", EndTime: "12:00", BasePrice: &narrowPrice, Priority: 10, Enabled: true},
	}

	quote, err := ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", monday)

	require.NoError(t, err)
	require.NotNil(t, quote.AppliedRuleID)
	assert.Equal(t, int64(2), *quote.AppliedRuleID)
}

func TestResolveTieBreakLowestID(t *testing.T) {
	// Полный паритет: выигрывает меньший id
	a := decimal.NewFromInt(1100)
	b := decimal.NewFromInt(1300)
	rules := []*domain.PriceRule{
		{ID: 9, DayType: domain.DayTypeAll, StartTime: "09:00", EndTime: "12:00", BasePrice: &b, Priority: 10, Enabled: true},
		{ID: 4, DayType: domain.DayTypeAll, StartTime: "09:00", EndTime: "12:00", BasePrice: &a, Priority: 10, Enabled: true},
	}

	quote, err := ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", monday)

	require.NoError(t, err)
	require.NotNil(t, quote.AppliedRuleID)
	assert.Equal(t, int64(4), *quote.AppliedRuleID)
}

func TestResolveDisabledRuleIgnored(t *testing.T) {
	price := decimal.NewFromInt(9999)
	rules := []*domain.PriceRule{
		{ID: 1, DayType: domain.DayTypeAll, StartTime: "06:00", EndTime: "23:00", BasePrice: &price, Priority: 100, Enabled: false},
	}

	quote, err := ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", monday)

	require.NoError(t, err)
	assert.Nil(t, quote.AppliedRuleID)
}

func TestResolveDatePinnedRule(t *testing.T) {
	price := decimal.NewFromInt(2500)
	rules := []*domain.PriceRule{
		{ID: 1, DayType: domain.DayTypeWeekday, OnDate: ptr.Ptr(saturday), StartTime: "06:00", EndTime: "23:00", BasePrice: &price, Priority: 5, Enabled: true},
	}

	// Правило привязано к субботе и работает именно в эту дату
	quote, err := ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", saturday)
	require.NoError(t, err)
	require.NotNil(t, quote.AppliedRuleID)

	// В другие дни не применяется
	quote, err = ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", monday)
	require.NoError(t, err)
	assert.Nil(t, quote.AppliedRuleID)
}

func TestResolveNegativePrice(t *testing.T) {
	discount := decimal.NewFromInt(-1500)
	rules := []*domain.PriceRule{
		{ID: 1, DayType: domain.DayTypeAll, StartTime: "06:00", EndTime: "23:00", ExtraCharge: &discount, Priority: 1, Enabled: true},
	}

	_, err := ResolveSlotPrice(baseConfig(), rules, "10:00", "11:00", monday)
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestResolveRoundingAtFinalStep(t *testing.T) {
	// 333.33 * 1.2 = 399.996 -> 400.00 (округление half-up на последнем шаге)
	cfg := baseConfig()
	cfg.BasePrice = dec("333.33")

	quote, err := ResolveSlotPrice(cfg, nil, "10:00", "11:00", saturday)

	require.NoError(t, err)
	assert.Equal(t, "400.00", quote.Price.StringFixed(2))
}

func TestComputeBreakdown(t *testing.T) {
	b := ComputeBreakdown(dec("1400.00"), dec("3.5"), dec("30"))

	assert.Equal(t, "1400.00", b.Subtotal.StringFixed(2))
	assert.Equal(t, "49.00", b.PlatformFee.StringFixed(2))
	assert.Equal(t, "420.00", b.OnlineAmount.Sub(b.PlatformFee).StringFixed(2))
	assert.Equal(t, "469.00", b.OnlineAmount.StringFixed(2))
	assert.Equal(t, "980.00", b.VenueAmount.StringFixed(2))
	assert.Equal(t, "1449.00", b.TotalAmount.StringFixed(2))
}

func TestComputeBreakdownSumInvariant(t *testing.T) {
	// Сумма частей равна итогу при неровных процентах
	subtotals := []string{"1400.00", "999.99", "1050.50", "0.01"}

	for _, s := range subtotals {
		b := ComputeBreakdown(dec(s), dec("3.33"), dec("33.33"))
		assert.True(
			t,
			b.OnlineAmount.Add(b.VenueAmount).Equal(b.TotalAmount),
			"subtotal %s: %s + %s != %s", s, b.OnlineAmount, b.VenueAmount, b.TotalAmount,
		)
	}
}

func TestComputeBreakdownZeroFee(t *testing.T) {
	b := ComputeBreakdown(dec("1000.00"), decimal.Zero, decimal.Zero)

	assert.True(t, b.PlatformFee.IsZero())
	assert.True(t, b.OnlineAmount.IsZero())
	assert.Equal(t, "1000.00", b.VenueAmount.StringFixed(2))
	assert.Equal(t, "1000.00", b.TotalAmount.StringFixed(2))
}

func TestResolverQuoteFeedsBreakdown(t *testing.T) {
	// Проверка связки: цена слота из resolver попадает в разбивку как есть
	quote, err := ResolveSlotPrice(baseConfig(), nil, types.TimeString("10:00"), types.TimeString("11:00"), monday)
	require.NoError(t, err)

	b := ComputeBreakdown(quote.Price, dec("3.5"), dec("30"))
	assert.True(t, b.Subtotal.Equal(quote.Price))
}
