package domain

import (
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// DisabledSlot represents an administrative block of a time window on a
// resource for a specific date (maintenance, private events)
type DisabledSlot struct {
	ID         int64
	VenueID    int64
	ResourceID int64

	SlotDate  time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	Reason  string
	Enabled bool

	CreatedBy int64 // менеджер площадки, создавший блокировку

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the disabled window intersects the slot window.
// Интервалы полуоткрытые [start, end): соприкосновение границами - не пересечение.
func (d *DisabledSlot) Overlaps(slotStart, slotEnd types.TimeString) bool {
	return d.StartTime.IsBefore(slotEnd) && d.EndTime.IsAfter(slotStart)
}
