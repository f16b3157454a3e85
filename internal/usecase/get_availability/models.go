package get_availability

import (
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
)

// Request модель запроса доступности слотов
type Request struct {
	VenueID    int64     // ID площадки
	ResourceID int64     // ID ресурса
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со слотами дня
type Response struct {
	VenueID      int64
	ResourceID   int64
	ResourceName string
	Date         time.Time

	Slots []domain.SlotView
}
