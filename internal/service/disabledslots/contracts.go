package disabledslots

import (
	"context"
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
)

// DisabledSlotRepository интерфейс репозитория окон блокировок
type DisabledSlotRepository interface {
	Create(ctx context.Context, slot *domain.DisabledSlot) (*domain.DisabledSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.DisabledSlot, error)
	ListByResource(ctx context.Context, venueID, resourceID int64, from, to *time.Time) ([]*domain.DisabledSlot, error)
	Delete(ctx context.Context, id int64) error
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
