package confirm_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	bookingRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/booking"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/invoiceservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/ledgerservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
)

var (
	testNow  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
)

// fakeBookingRepo фейковый репозиторий бронирований
type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error

	confirmErr   error
	confirmCalls int

	// reloaded возвращается из GetByID после вызова Confirm -
	// имитация состояния брони, измененного CAS запросом или конкурентом
	reloaded *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.confirmCalls > 0 && f.reloaded != nil {
		return f.reloaded, nil
	}
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) Confirm(_ context.Context, _ int64, paymentRef string, now time.Time) error {
	f.confirmCalls++
	if f.confirmErr != nil {
		return f.confirmErr
	}

	confirmed := *f.booking
	confirmed.Status = domain.StatusConfirmed
	confirmed.PaymentRef = &paymentRef
	confirmed.ConfirmedAt = &now
	f.reloaded = &confirmed
	return nil
}

// fakeLedgerClient фейковый клиент финансового реестра
type fakeLedgerClient struct {
	records []ledgerservice.RevenueRecord
	err     error
}

func (f *fakeLedgerClient) RecordBookingRevenue(_ context.Context, record ledgerservice.RevenueRecord) error {
	f.records = append(f.records, record)
	return f.err
}

// fakeInvoiceClient фейковый клиент сервиса документов
type fakeInvoiceClient struct {
	confirmations []invoiceservice.BookingConfirmation
	err           error
}

func (f *fakeInvoiceClient) NotifyBookingConfirmed(_ context.Context, c invoiceservice.BookingConfirmation) error {
	f.confirmations = append(f.confirmations, c)
	return f.err
}

// fixedClock провайдер фиксированного времени
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}

// nopLogger логгер-заглушка
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc            *UseCase
	bookingRepo   *fakeBookingRepo
	ledgerClient  *fakeLedgerClient
	invoiceClient *fakeInvoiceClient
	locks         *softlock.MemoryManager
}

func newFixture(booking *domain.Booking) *fixture {
	f := &fixture{
		bookingRepo:   &fakeBookingRepo{booking: booking},
		ledgerClient:  &fakeLedgerClient{},
		invoiceClient: &fakeInvoiceClient{},
		locks:         softlock.NewMemoryManagerWithClock(func() time.Time { return testNow }),
	}

	f.uc = NewUseCase(f.bookingRepo, f.locks, f.ledgerClient, f.invoiceClient, nopLogger{})
	f.uc.timeProvider = &fixedClock{t: testNow}

	return f
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:         10,
		Reference:  "BK-test",
		UserID:     5,
		VenueID:    1,
		ResourceID: 7,

		BookingDate: testDate,
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      domain.StatusPending,

		VenueName:    "Крытый манеж",
		ResourceName: "Корт 1",

		Currency:     domain.DefaultCurrency,
		TotalAmount:  decimal.NewFromInt(1035),
		PlatformFee:  decimal.NewFromInt(35),
		OnlineAmount: decimal.NewFromInt(335),
		VenueAmount:  decimal.NewFromInt(700),

		HoldExpiresAt: testNow.Add(5 * time.Minute),
	}
}

func TestConfirmBookingSuccess(t *testing.T) {
	booking := pendingBooking()
	f := newFixture(booking)

	// Блокировка, захваченная при резервировании, еще держится
	key := booking.SlotKey().String()
	require.NoError(t, f.locks.Acquire(context.Background(), key, booking.Reference, 5*time.Minute))

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, PaymentRef: "pay-123"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.False(t, resp.AlreadyConfirmed)
	require.NotNil(t, resp.PaymentRef)
	assert.Equal(t, "pay-123", *resp.PaymentRef)
	require.NotNil(t, resp.ConfirmedAt)
	assert.Equal(t, testNow, *resp.ConfirmedAt)

	assert.Equal(t, 1, f.bookingRepo.confirmCalls)

	// Блокировка снята: слот теперь удерживается самой бронью
	_, err = f.locks.Holder(context.Background(), key)
	assert.ErrorIs(t, err, softlock.ErrNotHeld)

	// Уведомлены финансовый реестр и сервис документов
	require.Len(t, f.ledgerClient.records, 1)
	assert.Equal(t, "BK-test", f.ledgerClient.records[0].BookingReference)
	assert.Equal(t, "pay-123", f.ledgerClient.records[0].PaymentRef)
	require.Len(t, f.invoiceClient.confirmations, 1)
	assert.Equal(t, "BK-test", f.invoiceClient.confirmations[0].BookingReference)
}

func TestConfirmBookingIdempotentReplay(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusConfirmed
	f := newFixture(booking)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, PaymentRef: "pay-123"})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyConfirmed)
	assert.Equal(t, 0, f.bookingRepo.confirmCalls, "повтор не должен трогать БД")
	assert.Empty(t, f.ledgerClient.records, "повтор не должен дублировать выручку в реестре")
}

func TestConfirmBookingHoldExpired(t *testing.T) {
	booking := pendingBooking()
	booking.HoldExpiresAt = testNow.Add(-time.Minute)
	f := newFixture(booking)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, PaymentRef: "pay-123"})

	assert.ErrorIs(t, err, ErrHoldExpired)
	assert.Equal(t, 0, f.bookingRepo.confirmCalls)
}

func TestConfirmBookingInvalidStatus(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusCancelled
	f := newFixture(booking)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, PaymentRef: "pay-123"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestConfirmBookingNotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, PaymentRef: "pay-123"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmBookingRaceResolvedAsIdempotent(t *testing.T) {
	// CAS проигран параллельному подтверждению: перечитанная бронь
	// уже confirmed - возвращаем идемпотентный результат
	booking := pendingBooking()
	f := newFixture(booking)

	concurrent := *booking
	concurrent.Status = domain.StatusConfirmed
	f.bookingRepo.confirmErr = bookingRepo.ErrNotPending
	f.bookingRepo.reloaded = &concurrent

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, PaymentRef: "pay-123"})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyConfirmed)
}

func TestConfirmBookingRaceResolvedAsExpired(t *testing.T) {
	// CAS проигран фоновой зачистке: бронь успела стать expired
	booking := pendingBooking()
	f := newFixture(booking)

	expired := *booking
	expired.Status = domain.StatusExpired
	f.bookingRepo.confirmErr = bookingRepo.ErrNotPending
	f.bookingRepo.reloaded = &expired

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, PaymentRef: "pay-123"})

	assert.ErrorIs(t, err, ErrHoldExpired)
}

func TestConfirmBookingDownstreamFailureDoesNotRollback(t *testing.T) {
	booking := pendingBooking()
	f := newFixture(booking)
	f.ledgerClient.err = errors.New("ledger down")
	f.invoiceClient.err = errors.New("invoice down")

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, PaymentRef: "pay-123"})

	require.NoError(t, err, "сбой уведомлений не откатывает подтвержденную бронь")
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestConfirmBookingValidation(t *testing.T) {
	f := newFixture(pendingBooking())

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, PaymentRef: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: 0, PaymentRef: "pay-123"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, f.bookingRepo.confirmCalls)
}
