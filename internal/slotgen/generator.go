// Package slotgen выводит бронируемые слоты дня из конфигурации ресурса.
// Слоты не хранятся в БД: генерация детерминирована и выполняется на лету
// при каждом запросе доступности или создании брони.
package slotgen

import (
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// Generate генерирует слоты дня с фиксированным шагом от открытия до закрытия.
// Последний неполный слот отбрасывается: если конец слота выходит за время
// закрытия, слот не включается в результат.
//
// Возвращает пустой список, если конфигурация выключена или окно работы
// некорректно (открытие не раньше закрытия, нулевая длительность).
func Generate(cfg *domain.SlotConfig, date time.Time) []domain.GeneratedSlot {
	slots := make([]domain.GeneratedSlot, 0)

	if !cfg.Enabled || !cfg.HasValidWindow() {
		return slots
	}

	currentSlot := cfg.OpeningTime

	for currentSlot.IsBefore(cfg.ClosingTime) {
		// Проверяем, что слот не выходит за время закрытия
		slotEnd, err := currentSlot.AddMinutes(cfg.SlotDurationMinutes)
		if err != nil {
			// Конец слота за границей суток - дальше слотов не будет
			break
		}
		if slotEnd.IsAfter(cfg.ClosingTime) {
			break
		}

		slots = append(slots, domain.GeneratedSlot{
			StartTime:       currentSlot,
			EndTime:         slotEnd,
			DurationMinutes: cfg.SlotDurationMinutes,
			DisplayOrder:    len(slots),
		})

		currentSlot = slotEnd
	}

	return slots
}

// FilterByNotice фильтрует слоты сегодняшнего дня по минимальному времени
// до начала брони. Для дат, отличных от сегодняшней, список не меняется.
func FilterByNotice(slots []domain.GeneratedSlot, date, now time.Time, noticeMinutes int) []domain.GeneratedSlot {
	if !isSameDay(date, now) {
		return slots
	}

	minAllowedTime, err := types.NewTimeString(now).AddMinutes(noticeMinutes)
	if err != nil {
		// Минимальное время за границей суток - сегодня уже ничего не забронировать
		return []domain.GeneratedSlot{}
	}

	filtered := make([]domain.GeneratedSlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.IsBefore(minAllowedTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// FindSlot ищет в сгенерированных слотах слот с точными границами окна.
// Бронь принимается только на слот, существующий в сетке ресурса.
func FindSlot(slots []domain.GeneratedSlot, start, end types.TimeString) (domain.GeneratedSlot, bool) {
	for _, slot := range slots {
		if slot.StartTime == start && slot.EndTime == end {
			return slot, true
		}
	}
	return domain.GeneratedSlot{}, false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
