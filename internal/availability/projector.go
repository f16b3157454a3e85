// Package availability проецирует сгенерированные слоты на брони, окна
// блокировок администратора и мягкие блокировки, выдавая статус каждого
// слота дня. Проекция read-only: ничего не создает и не продлевает.
package availability

import (
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/pricing"
)

// ReasonTemporarilyReserved причина для слотов, удерживаемых чужой блокировкой
const ReasonTemporarilyReserved = "Временно занято"

// Input входные данные проекции. Bookings и Disabled должны быть уже
// отфильтрованы по ресурсу и дате запроса.
type Input struct {
	Config   *domain.SlotConfig
	Rules    []*domain.PriceRule
	Slots    []domain.GeneratedSlot
	Bookings []*domain.Booking
	Disabled []*domain.DisabledSlot

	// Канонические ключи слотов (domain.SlotKey.String) с активной блокировкой
	HeldKeys map[string]struct{}

	ResourceID int64
	Date       time.Time
	Now        time.Time
}

// Project вычисляет статус каждого слота.
//
// Приоритет статусов: booked (пересечение с блокирующей бронью) > disabled
// (пересечение с включенным окном блокировки) > held (чужая мягкая
// блокировка) > available. Для доступных слотов заполняется цена.
//
// Интервалы полуоткрытые [start, end): бронь, заканчивающаяся ровно в начале
// слота, слот не занимает.
func Project(in Input) ([]domain.SlotView, error) {
	views := make([]domain.SlotView, 0, len(in.Slots))

	for _, slot := range in.Slots {
		view := domain.SlotView{
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			DurationMinutes: slot.DurationMinutes,
			DisplayOrder:    slot.DisplayOrder,
		}

		switch {
		case hasBlockingBooking(slot, in.Bookings, in.Now):
			view.Status = domain.SlotStatusBooked

		case disabledReason(slot, in.Disabled) != nil:
			view.Status = domain.SlotStatusDisabled
			view.Reason = disabledReason(slot, in.Disabled)

		case isHeld(slot, in.HeldKeys, in.ResourceID, in.Date):
			view.Status = domain.SlotStatusHeld
			reason := ReasonTemporarilyReserved
			view.Reason = &reason

		default:
			quote, err := pricing.ResolveSlotPrice(in.Config, in.Rules, slot.StartTime, slot.EndTime, in.Date)
			if err != nil {
				return nil, err
			}
			view.Status = domain.SlotStatusAvailable
			view.Price = &quote.Price
			view.AppliedRuleID = quote.AppliedRuleID
		}

		views = append(views, view)
	}

	return views, nil
}

// hasBlockingBooking проверяет пересечение слота с бронью, занимающей слот.
// Pending брони учитываются только в пределах окна оплаты: после его
// истечения слот снова доступен, не дожидаясь фоновой зачистки.
func hasBlockingBooking(slot domain.GeneratedSlot, bookings []*domain.Booking, now time.Time) bool {
	for _, booking := range bookings {
		if !booking.IsBlocking(now) {
			continue
		}

		// Строгие неравенства: граничащие интервалы не пересекаются
		if booking.StartTime.IsBefore(slot.EndTime) && booking.EndTime.IsAfter(slot.StartTime) {
			return true
		}
	}
	return false
}

// disabledReason возвращает причину первого пересекающегося включенного окна
// блокировки, либо nil
func disabledReason(slot domain.GeneratedSlot, disabled []*domain.DisabledSlot) *string {
	for _, d := range disabled {
		if !d.Enabled {
			continue
		}
		if d.Overlaps(slot.StartTime, slot.EndTime) {
			reason := d.Reason
			return &reason
		}
	}
	return nil
}

// isHeld проверяет наличие активной мягкой блокировки на ключе слота
func isHeld(slot domain.GeneratedSlot, heldKeys map[string]struct{}, resourceID int64, date time.Time) bool {
	if len(heldKeys) == 0 {
		return false
	}
	_, ok := heldKeys[slot.Key(resourceID, date).String()]
	return ok
}
