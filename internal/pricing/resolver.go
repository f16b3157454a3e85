// Package pricing вычисляет стоимость слота по конфигурации ресурса и
// правилам цен, а также денежную разбивку брони. Вся арифметика выполняется
// в decimal, округление до копеек - только на последнем шаге.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

var hundred = decimal.NewFromInt(100)

// Quote результат вычисления цены слота
type Quote struct {
	Price         decimal.Decimal
	AppliedRuleID *int64 // nil, если сработал базовый тариф конфигурации
}

// ResolveSlotPrice вычисляет стоимость слота.
//
// Кандидатом считается включенное правило, действующее на дату и полностью
// покрывающее окно слота. Из кандидатов детерминированно выбирается одно:
// больший priority, затем более узкое окно, затем меньший id.
//
// Эффективная цена: base_price правила, если задан, иначе базовый тариф
// конфигурации с множителем выходного дня (base_price правила множитель
// отключает). Поверх добавляется extra_charge правила.
func ResolveSlotPrice(
	cfg *domain.SlotConfig,
	rules []*domain.PriceRule,
	slotStart, slotEnd types.TimeString,
	date time.Time,
) (Quote, error) {
	isWeekend := cfg.IsWeekend(date)

	rule := selectRule(rules, slotStart, slotEnd, date, isWeekend)

	var price decimal.Decimal
	if rule != nil && rule.BasePrice != nil {
		price = *rule.BasePrice
	} else {
		price = cfg.BasePrice
		if isWeekend && cfg.HasWeekendPricing() {
			price = price.Mul(*cfg.WeekendMultiplier)
		}
	}

	var appliedRuleID *int64
	if rule != nil {
		appliedRuleID = &rule.ID
		if rule.ExtraCharge != nil {
			price = price.Add(*rule.ExtraCharge)
		}
	}

	// Округление до двух знаков только здесь, после всей арифметики
	price = price.Round(2)

	if price.IsNegative() {
		return Quote{}, ErrNegativePrice
	}

	return Quote{Price: price, AppliedRuleID: appliedRuleID}, nil
}

// selectRule выбирает применимое правило с детерминированным разрешением конфликтов
func selectRule(
	rules []*domain.PriceRule,
	slotStart, slotEnd types.TimeString,
	date time.Time,
	isWeekend bool,
) *domain.PriceRule {
	var best *domain.PriceRule

	for _, rule := range rules {
		if !rule.AppliesToDate(date, isWeekend) {
			continue
		}
		if !rule.Covers(slotStart, slotEnd) {
			continue
		}
		if best == nil || beats(rule, best) {
			best = rule
		}
	}

	return best
}

// beats возвращает true, если правило a выигрывает у правила b
func beats(a, b *domain.PriceRule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if aw, bw := a.WindowMinutes(), b.WindowMinutes(); aw != bw {
		return aw < bw
	}
	return a.ID < b.ID
}

// Breakdown денежная разбивка брони
type Breakdown struct {
	Subtotal           decimal.Decimal
	PlatformFeePercent decimal.Decimal
	PlatformFee        decimal.Decimal
	OnlineAmount       decimal.Decimal
	VenueAmount        decimal.Decimal
	TotalAmount        decimal.Decimal
}

// ComputeBreakdown раскладывает стоимость слота на платформенный сбор и
// онлайн/офлайн части. Аванс и сбор оплачиваются онлайн при бронировании,
// остаток - на площадке.
//
// Инвариант: OnlineAmount + VenueAmount == TotalAmount при любом округлении,
// так как обе части считаются от одного округленного аванса.
func ComputeBreakdown(subtotal, feePercent, advancePercent decimal.Decimal) Breakdown {
	fee := subtotal.Mul(feePercent).Div(hundred).Round(2)
	advance := subtotal.Mul(advancePercent).Div(hundred).Round(2)

	return Breakdown{
		Subtotal:           subtotal,
		PlatformFeePercent: feePercent,
		PlatformFee:        fee,
		OnlineAmount:       advance.Add(fee),
		VenueAmount:        subtotal.Sub(advance),
		TotalAmount:        subtotal.Add(fee),
	}
}
