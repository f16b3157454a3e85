package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetVenueBookingsRequest запрос на получение бронирований площадки
type GetVenueBookingsRequest struct {
	UserID          int64      `json:"userId"`
	VenueID         int64      `json:"venueId"`
	ResourceID      *int64     `json:"resourceId,omitempty"`      // Фильтр по ресурсу (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершенные брони
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID:         r.VenueID,
		ResourceID:      r.ResourceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	UserID     int64  `json:"userId"`
	VenueID    int64  `json:"venueId"`
	ResourceID int64  `json:"resourceId"`

	BookingDate     string `json:"bookingDate"` // "2026-03-15"
	StartTime       string `json:"startTime"`   // "10:00"
	EndTime         string `json:"endTime"`     // "11:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	VenueName     string  `json:"venueName"`
	ResourceName  string  `json:"resourceName"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	// Денежная разбивка
	Currency           string          `json:"currency"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	PlatformFeePercent decimal.Decimal `json:"platformFeePercent"`
	PlatformFee        decimal.Decimal `json:"platformFee"`
	OnlineAmount       decimal.Decimal `json:"onlineAmount"`
	VenueAmount        decimal.Decimal `json:"venueAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	AppliedRuleID      *int64          `json:"appliedRuleId,omitempty"`

	PaymentRef         *string `json:"paymentRef,omitempty"`
	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	HoldExpiresAt string  `json:"holdExpiresAt"`         // ISO 8601
	ConfirmedAt   *string `json:"confirmedAt,omitempty"` // ISO 8601
	CancelledAt   *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует доменную бронь в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:         b.ID,
		Reference:  b.Reference,
		UserID:     b.UserID,
		VenueID:    b.VenueID,
		ResourceID: b.ResourceID,

		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),

		VenueName:     b.VenueName,
		ResourceName:  b.ResourceName,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,

		Currency:           b.Currency,
		Subtotal:           b.Subtotal,
		PlatformFeePercent: b.PlatformFeePercent,
		PlatformFee:        b.PlatformFee,
		OnlineAmount:       b.OnlineAmount,
		VenueAmount:        b.VenueAmount,
		TotalAmount:        b.TotalAmount,
		AppliedRuleID:      b.AppliedRuleID,

		PaymentRef:         b.PaymentRef,
		CancellationReason: b.CancellationReason,

		HoldExpiresAt: b.HoldExpiresAt.Format(time.RFC3339),

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.CancelledBy != nil {
		cancelledBy := string(*b.CancelledBy)
		resp.CancelledBy = &cancelledBy
	}
	if b.ConfirmedAt != nil {
		confirmedAt := b.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &confirmedAt
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список доменных броней в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, *FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: responses,
		Total:    len(responses),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled,
		domain.StatusExpired, domain.StatusFailed:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
