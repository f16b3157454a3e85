package reserve_slot

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	reserveSlot "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/reserve_slot"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	VenueID     int64   `json:"venueId"`
	ResourceID  int64   `json:"resourceId"`
	BookingDate string  `json:"bookingDate"` // "2026-03-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	EndTime     string  `json:"endTime"`     // "11:00"

	ClientRequestID *string `json:"clientRequestId,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	UserID     int64  `json:"userId"`
	VenueID    int64  `json:"venueId"`
	ResourceID int64  `json:"resourceId"`

	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	VenueName     string  `json:"venueName"`
	ResourceName  string  `json:"resourceName"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	Currency           string          `json:"currency"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	PlatformFeePercent decimal.Decimal `json:"platformFeePercent"`
	PlatformFee        decimal.Decimal `json:"platformFee"`
	OnlineAmount       decimal.Decimal `json:"onlineAmount"`
	VenueAmount        decimal.Decimal `json:"venueAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	AppliedRuleID      *int64          `json:"appliedRuleId,omitempty"`

	HoldExpiresAt string `json:"holdExpiresAt"` // ISO 8601
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest(userID int64) (*reserveSlot.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		UserID:          userID,
		VenueID:         r.VenueID,
		ResourceID:      r.ResourceID,
		Date:            bookingDate,
		StartTime:       startTime,
		EndTime:         endTime,
		ClientRequestID: r.ClientRequestID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		Reference:  resp.Reference,
		UserID:     resp.UserID,
		VenueID:    resp.VenueID,
		ResourceID: resp.ResourceID,

		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,

		VenueName:     resp.VenueName,
		ResourceName:  resp.ResourceName,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,

		Currency:           resp.Currency,
		Subtotal:           resp.Subtotal,
		PlatformFeePercent: resp.PlatformFeePercent,
		PlatformFee:        resp.PlatformFee,
		OnlineAmount:       resp.OnlineAmount,
		VenueAmount:        resp.VenueAmount,
		TotalAmount:        resp.TotalAmount,
		AppliedRuleID:      resp.AppliedRuleID,

		HoldExpiresAt: resp.HoldExpiresAt.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
