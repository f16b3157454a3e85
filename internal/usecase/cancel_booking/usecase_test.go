package cancel_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	bookingRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/booking"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/ptr"
)

var (
	testNow  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
)

// fakeBookingRepo фейковый репозиторий бронирований
type fakeBookingRepo struct {
	booking *domain.Booking

	cancelErr   error
	cancelCalls int

	// reloaded возвращается из GetByID после вызова CancelPending
	reloaded *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.cancelCalls > 0 && f.reloaded != nil {
		return f.reloaded, nil
	}
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) CancelPending(_ context.Context, _ int64, status domain.BookingStatus, actor domain.CancelActor, reason string, now time.Time) error {
	f.cancelCalls++
	if f.cancelErr != nil {
		return f.cancelErr
	}

	cancelled := *f.booking
	cancelled.Status = status
	cancelled.CancelledBy = &actor
	cancelled.CancelledAt = &now
	if reason != "" {
		cancelled.CancellationReason = &reason
	}
	f.reloaded = &cancelled
	return nil
}

// fakeVenueClient фейковый клиент VenueService
type fakeVenueClient struct {
	venue *venueservice.Venue
}

func (f *fakeVenueClient) GetVenue(_ context.Context, _ int64) (*venueservice.Venue, error) {
	if f.venue == nil {
		return nil, venueservice.ErrVenueNotFound
	}
	return f.venue, nil
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
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	venueClient *fakeVenueClient
	locks       *softlock.MemoryManager
}

func newFixture(booking *domain.Booking) *fixture {
	f := &fixture{
		bookingRepo: &fakeBookingRepo{booking: booking},
		venueClient: &fakeVenueClient{
			venue: &venueservice.Venue{ID: 1, Name: "Крытый манеж", ManagerIDs: []int64{20}, Enabled: true},
		},
		locks: softlock.NewMemoryManagerWithClock(func() time.Time { return testNow }),
	}

	f.uc = NewUseCase(f.bookingRepo, f.venueClient, f.locks, nopLogger{})
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

		HoldExpiresAt: testNow.Add(5 * time.Minute),
	}
}

func TestCancelBookingByOwner(t *testing.T) {
	booking := pendingBooking()
	f := newFixture(booking)

	key := booking.SlotKey().String()
	require.NoError(t, f.locks.Acquire(context.Background(), key, booking.Reference, 5*time.Minute))

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorUser,
		CallerID:  5,
		Reason:    ptr.Ptr("планы изменились"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.False(t, resp.AlreadyCancelled)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, domain.CancelActorUser, *resp.CancelledBy)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "планы изменились", *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, testNow, *resp.CancelledAt)

	// Блокировка снята: слот сразу возвращается в доступные
	_, err = f.locks.Holder(context.Background(), key)
	assert.ErrorIs(t, err, softlock.ErrNotHeld)
}

func TestCancelBookingByVenueManager(t *testing.T) {
	f := newFixture(pendingBooking())

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorVenue,
		CallerID:  20, // менеджер площадки
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, domain.CancelActorVenue, *resp.CancelledBy)
}

func TestCancelBookingNotOwner(t *testing.T) {
	f := newFixture(pendingBooking())

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorUser,
		CallerID:  99,
	})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 0, f.bookingRepo.cancelCalls)
}

func TestCancelBookingNotManager(t *testing.T) {
	f := newFixture(pendingBooking())

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorVenue,
		CallerID:  99, // не входит в ManagerIDs
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelBookingVenueGone(t *testing.T) {
	f := newFixture(pendingBooking())
	f.venueClient.venue = nil

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorVenue,
		CallerID:  20,
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelBookingByPaymentMovesToFailed(t *testing.T) {
	f := newFixture(pendingBooking())

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorPayment,
		CallerID:  0, // внутренний вызов, авторизация на транспорте
		Reason:    ptr.Ptr("платеж отклонен"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusFailed), resp.Status)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, domain.CancelActorPayment, *resp.CancelledBy)
}

func TestCancelBookingIdempotentReplay(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusCancelled
	f := newFixture(booking)

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorUser,
		CallerID:  5,
	})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyCancelled)
	assert.Equal(t, 0, f.bookingRepo.cancelCalls, "повтор не должен трогать БД")
}

func TestCancelBookingConfirmedNotCancellable(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusConfirmed
	f := newFixture(booking)

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorUser,
		CallerID:  5,
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancelBookingNotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorUser,
		CallerID:  5,
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelBookingRaceResolvedAsIdempotent(t *testing.T) {
	// CAS проигран параллельной отмене: перечитанная бронь уже cancelled
	booking := pendingBooking()
	f := newFixture(booking)

	concurrent := *booking
	concurrent.Status = domain.StatusCancelled
	f.bookingRepo.cancelErr = bookingRepo.ErrNotPending
	f.bookingRepo.reloaded = &concurrent

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorUser,
		CallerID:  5,
	})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyCancelled)
}

func TestCancelBookingRaceResolvedAsInvalidStatus(t *testing.T) {
	// CAS проигран подтверждению: бронь успела стать confirmed
	booking := pendingBooking()
	f := newFixture(booking)

	concurrent := *booking
	concurrent.Status = domain.StatusConfirmed
	f.bookingRepo.cancelErr = bookingRepo.ErrNotPending
	f.bookingRepo.reloaded = &concurrent

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorUser,
		CallerID:  5,
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancelBookingValidation(t *testing.T) {
	f := newFixture(pendingBooking())

	// Неизвестный инициатор
	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActor("robot"),
		CallerID:  5,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// user и venue обязаны передать CallerID
	_, err = f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorUser,
		CallerID:  0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Слишком длинная причина
	_, err = f.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		Actor:     domain.CancelActorUser,
		CallerID:  5,
		Reason:    ptr.Ptr(strings.Repeat("x", domain.MaxCancellationReasonLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, f.bookingRepo.cancelCalls)
}
