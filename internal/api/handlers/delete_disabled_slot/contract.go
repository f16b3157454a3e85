package delete_disabled_slot

import "context"

type DisabledSlotService interface {
	Delete(ctx context.Context, slotID, venueID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
