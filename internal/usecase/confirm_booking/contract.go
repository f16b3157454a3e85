package confirm_booking

import (
	"context"
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/invoiceservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/ledgerservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Confirm(ctx context.Context, id int64, paymentRef string, now time.Time) error
}

// LockManager интерфейс менеджера мягких блокировок слотов
type LockManager interface {
	Release(ctx context.Context, key, holder string) error
}

// LedgerServiceClient интерфейс клиента финансового реестра
type LedgerServiceClient interface {
	RecordBookingRevenue(ctx context.Context, record ledgerservice.RevenueRecord) error
}

// InvoiceServiceClient интерфейс клиента сервиса документов
type InvoiceServiceClient interface {
	NotifyBookingConfirmed(ctx context.Context, confirmation invoiceservice.BookingConfirmation) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
