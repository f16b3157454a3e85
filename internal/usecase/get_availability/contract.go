package get_availability

import (
	"context"
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Booking, error)
}

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, venueID int64, resourceID *int64) (*domain.SlotConfig, error)
}

// PriceRuleRepository интерфейс репозитория правил цен
type PriceRuleRepository interface {
	GetActiveByResource(ctx context.Context, venueID, resourceID int64) ([]*domain.PriceRule, error)
}

// DisabledSlotRepository интерфейс репозитория окон блокировок
type DisabledSlotRepository interface {
	GetActiveByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.DisabledSlot, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
	GetResource(ctx context.Context, venueID, resourceID int64) (*venueservice.Resource, error)
}

// LockManager интерфейс менеджера мягких блокировок слотов
type LockManager interface {
	Holder(ctx context.Context, key string) (string, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
