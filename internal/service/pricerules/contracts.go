package pricerules

import (
	"context"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
)

// PriceRuleRepository интерфейс репозитория правил цен
type PriceRuleRepository interface {
	Create(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error)
	GetByID(ctx context.Context, id int64) (*domain.PriceRule, error)
	GetAllByVenue(ctx context.Context, venueID int64) ([]*domain.PriceRule, error)
	Disable(ctx context.Context, id int64) error
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
