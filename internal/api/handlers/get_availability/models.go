package get_availability

import (
	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	getAvailability "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота дня
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`

	Status string  `json:"status"` // "available", "booked", "disabled", "held"
	Reason *string `json:"reason,omitempty"`

	Price         *decimal.Decimal `json:"price,omitempty"`
	AppliedRuleID *int64           `json:"appliedRuleId,omitempty"`
}

// AvailabilityResponse HTTP модель доступности ресурса на дату
type AvailabilityResponse struct {
	VenueID      int64          `json:"venueId"`
	ResourceID   int64          `json:"resourceId"`
	ResourceName string         `json:"resourceName"`
	Date         string         `json:"date"`
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
			Status:          string(s.Status),
			Reason:          s.Reason,
			Price:           s.Price,
			AppliedRuleID:   s.AppliedRuleID,
		})
	}

	return &AvailabilityResponse{
		VenueID:      resp.VenueID,
		ResourceID:   resp.ResourceID,
		ResourceName: resp.ResourceName,
		Date:         resp.Date.Format(domain.DateFormat),
		Slots:        slots,
	}
}
