package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	configRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/slotconfig"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
)

var (
	testNow  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник
)

// fakeBookingRepo фейковый репозиторий бронирований
type fakeBookingRepo struct {
	active []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByResourceAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.active, nil
}

// fakeConfigRepo фейковый репозиторий конфигураций
type fakeConfigRepo struct {
	config *domain.SlotConfig
	err    error
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.SlotConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

// fakeRuleRepo фейковый репозиторий правил цен
type fakeRuleRepo struct {
	rules []*domain.PriceRule
}

func (f *fakeRuleRepo) GetActiveByResource(_ context.Context, _, _ int64) ([]*domain.PriceRule, error) {
	return f.rules, nil
}

// fakeDisabledRepo фейковый репозиторий окон блокировок
type fakeDisabledRepo struct {
	disabled []*domain.DisabledSlot
}

func (f *fakeDisabledRepo) GetActiveByResourceAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DisabledSlot, error) {
	return f.disabled, nil
}

// fakeVenueClient фейковый клиент VenueService
type fakeVenueClient struct {
	venue    *venueservice.Venue
	resource *venueservice.Resource
}

func (f *fakeVenueClient) GetVenue(_ context.Context, _ int64) (*venueservice.Venue, error) {
	if f.venue == nil {
		return nil, venueservice.ErrVenueNotFound
	}
	return f.venue, nil
}

func (f *fakeVenueClient) GetResource(_ context.Context, _, _ int64) (*venueservice.Resource, error) {
	if f.resource == nil {
		return nil, venueservice.ErrResourceNotFound
	}
	return f.resource, nil
}

// erroringLocks менеджер блокировок, отвечающий ошибкой на любой опрос
type erroringLocks struct{}

func (erroringLocks) Holder(context.Context, string) (string, error) {
	return "", errors.New("redis timeout")
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
	uc           *UseCase
	bookingRepo  *fakeBookingRepo
	configRepo   *fakeConfigRepo
	ruleRepo     *fakeRuleRepo
	disabledRepo *fakeDisabledRepo
	venueClient  *fakeVenueClient
	locks        *softlock.MemoryManager
}

func newFixture() *fixture {
	f := &fixture{
		bookingRepo: &fakeBookingRepo{},
		configRepo: &fakeConfigRepo{config: &domain.SlotConfig{
			VenueID:             1,
			OpeningTime:         "10:00",
			ClosingTime:         "14:00",
			SlotDurationMinutes: 60,
			BasePrice:           decimal.NewFromInt(1000),
			AdvanceBookingDays:  30,
			Enabled:             true,
		}},
		ruleRepo:     &fakeRuleRepo{},
		disabledRepo: &fakeDisabledRepo{},
		venueClient: &fakeVenueClient{
			venue:    &venueservice.Venue{ID: 1, Name: "Крытый манеж", Enabled: true},
			resource: &venueservice.Resource{ID: 7, VenueID: 1, Name: "Корт 1", Enabled: true},
		},
		locks: softlock.NewMemoryManagerWithClock(func() time.Time { return testNow }),
	}

	f.uc = NewUseCase(f.bookingRepo, f.configRepo, f.ruleRepo, f.disabledRepo, f.venueClient, f.locks, nopLogger{})
	f.uc.timeProvider = &fixedClock{t: testNow}

	return f
}

func TestGetAvailabilityProjection(t *testing.T) {
	f := newFixture()

	// 11:00-12:00 занят подтвержденной бронью
	f.bookingRepo.active = []*domain.Booking{{
		ResourceID:  7,
		BookingDate: testDate,
		StartTime:   "11:00",
		EndTime:     "12:00",
		Status:      domain.StatusConfirmed,
	}}

	// 12:00-13:00 закрыт администратором
	f.disabledRepo.disabled = []*domain.DisabledSlot{{
		ResourceID: 7,
		SlotDate:   testDate,
		StartTime:  "12:00",
		EndTime:    "13:00",
		Reason:     "Ремонт покрытия",
		Enabled:    true,
	}}

	// 13:00-14:00 удерживается чужой мягкой блокировкой
	heldKey := domain.NewSlotKey(7, testDate, "13:00", "14:00").String()
	require.NoError(t, f.locks.Acquire(context.Background(), heldKey, "BK-other", 5*time.Minute))

	resp, err := f.uc.Execute(context.Background(), &Request{VenueID: 1, ResourceID: 7, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, "Корт 1", resp.ResourceName)
	require.Len(t, resp.Slots, 4)

	free := resp.Slots[0]
	assert.Equal(t, domain.SlotStatusAvailable, free.Status)
	require.NotNil(t, free.Price)
	assert.Equal(t, "1000", free.Price.String())
	assert.Nil(t, free.Reason)

	booked := resp.Slots[1]
	assert.Equal(t, domain.SlotStatusBooked, booked.Status)
	assert.Nil(t, booked.Price)

	disabledSlot := resp.Slots[2]
	assert.Equal(t, domain.SlotStatusDisabled, disabledSlot.Status)
	require.NotNil(t, disabledSlot.Reason)
	assert.Equal(t, "Ремонт покрытия", *disabledSlot.Reason)

	held := resp.Slots[3]
	assert.Equal(t, domain.SlotStatusHeld, held.Status)
	require.NotNil(t, held.Reason)
	assert.Equal(t, "Временно занято", *held.Reason)
}

func TestGetAvailabilityExpiredPendingFreesSlot(t *testing.T) {
	f := newFixture()
	f.bookingRepo.active = []*domain.Booking{{
		ResourceID:    7,
		BookingDate:   testDate,
		StartTime:     "10:00",
		EndTime:       "11:00",
		Status:        domain.StatusPending,
		HoldExpiresAt: testNow.Add(-time.Minute), // окно оплаты истекло
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{VenueID: 1, ResourceID: 7, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusAvailable, resp.Slots[0].Status)
}

func TestGetAvailabilityNoticeFiltersTodaySlots(t *testing.T) {
	f := newFixture()
	f.configRepo.config.MinBookingNoticeMinutes = 30

	// Сегодня, сейчас 12:00: слоты 10:00 и 11:00 уже недоступны,
	// слот 12:00 отсекается минимальным уведомлением
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), &Request{VenueID: 1, ResourceID: 7, Date: today})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "13:00", resp.Slots[0].StartTime.String())
}

func TestGetAvailabilityLockPollFailureDegrades(t *testing.T) {
	// Сбой опроса менеджера блокировок не валит запрос: слот показывается
	// доступным, конфликт всплывет при резервировании
	f := newFixture()
	uc := NewUseCase(f.bookingRepo, f.configRepo, f.ruleRepo, f.disabledRepo, f.venueClient, erroringLocks{}, nopLogger{})
	uc.timeProvider = &fixedClock{t: testNow}

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, ResourceID: 7, Date: testDate})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	for _, slot := range resp.Slots {
		assert.Equal(t, domain.SlotStatusAvailable, slot.Status)
	}
}

func TestGetAvailabilityVenueDisabled(t *testing.T) {
	f := newFixture()
	f.venueClient.venue.Enabled = false

	_, err := f.uc.Execute(context.Background(), &Request{VenueID: 1, ResourceID: 7, Date: testDate})

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestGetAvailabilityResourceNotFound(t *testing.T) {
	f := newFixture()
	f.venueClient.resource = nil

	_, err := f.uc.Execute(context.Background(), &Request{VenueID: 1, ResourceID: 7, Date: testDate})

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestGetAvailabilityConfigNotFound(t *testing.T) {
	f := newFixture()
	f.configRepo.err = configRepo.ErrConfigNotFound

	_, err := f.uc.Execute(context.Background(), &Request{VenueID: 1, ResourceID: 7, Date: testDate})

	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestGetAvailabilityPastDate(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		VenueID:    1,
		ResourceID: 7,
		Date:       testNow.AddDate(0, 0, -1),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}
