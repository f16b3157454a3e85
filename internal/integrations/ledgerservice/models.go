package ledgerservice

import "github.com/shopspring/decimal"

// RevenueRecord запись о распределении выручки по подтвержденной брони
type RevenueRecord struct {
	BookingReference string          `json:"bookingReference"`
	VenueID          int64           `json:"venueId"`
	Currency         string          `json:"currency"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	PlatformFee      decimal.Decimal `json:"platformFee"`
	OnlineAmount     decimal.Decimal `json:"onlineAmount"`
	VenueAmount      decimal.Decimal `json:"venueAmount"`
	PaymentRef       string          `json:"paymentRef"`
}
