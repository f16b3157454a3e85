package invoiceservice

import "github.com/shopspring/decimal"

// BookingConfirmation уведомление о подтвержденной брони для выставления документов
type BookingConfirmation struct {
	BookingReference string          `json:"bookingReference"`
	UserID           int64           `json:"userId"`
	VenueID          int64           `json:"venueId"`
	VenueName        string          `json:"venueName"`
	ResourceName     string          `json:"resourceName"`
	BookingDate      string          `json:"bookingDate"`
	StartTime        string          `json:"startTime"`
	EndTime          string          `json:"endTime"`
	Currency         string          `json:"currency"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	PaymentRef       string          `json:"paymentRef"`
}
