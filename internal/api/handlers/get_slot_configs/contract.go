package get_slot_configs

import (
	"context"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/slotconfigs/models"
)

type SlotConfigService interface {
	GetAllByVenue(ctx context.Context, venueID, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
