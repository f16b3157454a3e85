package slotconfigs

import (
	"context"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
)

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetAllByVenue(ctx context.Context, venueID int64) ([]*domain.SlotConfig, error)
	Upsert(ctx context.Context, config *domain.SlotConfig) (*domain.SlotConfig, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
	GetResource(ctx context.Context, venueID, resourceID int64) (*venueservice.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
