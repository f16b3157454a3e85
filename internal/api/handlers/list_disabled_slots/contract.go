package list_disabled_slots

import (
	"context"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/disabledslots/models"
)

type DisabledSlotService interface {
	ListByResource(ctx context.Context, req *models.ListDisabledSlotsRequest) (*models.DisabledSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
