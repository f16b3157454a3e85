package list_price_rules

import (
	"context"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/pricerules/models"
)

type PriceRuleService interface {
	ListByVenue(ctx context.Context, venueID, userID int64) (*models.PriceRuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
