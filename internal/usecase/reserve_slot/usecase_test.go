package reserve_slot

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
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/userservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/ptr"
)

var (
	testNow  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник
)

const testLockTTL = 7 * time.Minute

// fakeBookingRepo фейковый репозиторий бронирований
type fakeBookingRepo struct {
	byClientRequest map[string]*domain.Booking
	active          []*domain.Booking

	created   *domain.Booking
	createErr error

	// lookupMisses заставляет первые N вызовов GetByUserAndClientRequestID
	// вернуть "не найдено" - имитация гонки параллельных повторов
	lookupMisses int
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 100
	booking.CreatedAt = testNow
	booking.UpdatedAt = testNow
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByUserAndClientRequestID(_ context.Context, _ int64, clientRequestID string) (*domain.Booking, error) {
	if f.lookupMisses > 0 {
		f.lookupMisses--
		return nil, bookingRepo.ErrBookingNotFound
	}
	if b, ok := f.byClientRequest[clientRequestID]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
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

// fakeUserClient фейковый клиент UserService
type fakeUserClient struct {
	profile *userservice.Profile
	err     error
}

func (f *fakeUserClient) GetProfileWithGracefulDegradation(_ context.Context, _ int64) (*userservice.Profile, error) {
	return f.profile, f.err
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	userClient   *fakeUserClient
	locks        *softlock.MemoryManager
}

func newFixture() *fixture {
	f := &fixture{
		bookingRepo: &fakeBookingRepo{byClientRequest: map[string]*domain.Booking{}},
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
		userClient: &fakeUserClient{profile: &userservice.Profile{ID: 5, Name: "Иван", Phone: "+79990000000"}},
		locks:      softlock.NewMemoryManagerWithClock(func() time.Time { return testNow }),
	}

	f.uc = NewUseCase(
		f.bookingRepo,
		f.configRepo,
		f.ruleRepo,
		f.disabledRepo,
		f.venueClient,
		f.userClient,
		f.locks,
		&fakeTxManager{},
		Params{
			LockTTL:             testLockTTL,
			PlatformFeePercent:  decimal.NewFromFloat(3.5),
			AdvanceSharePercent: decimal.NewFromInt(30),
		},
		nopLogger{},
	)
	f.uc.timeProvider = &fixedClock{t: testNow}

	return f
}

func validRequest() *Request {
	return &Request{
		UserID:     5,
		VenueID:    1,
		ResourceID: 7,
		Date:       testDate,
		StartTime:  "10:00",
		EndTime:    "11:00",
	}
}

func TestReserveSlotSuccess(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Contains(t, resp.Reference, "BK-")
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.False(t, resp.AlreadyExists)

	assert.Equal(t, "Крытый манеж", resp.VenueName)
	assert.Equal(t, "Корт 1", resp.ResourceName)
	require.NotNil(t, resp.CustomerName)
	assert.Equal(t, "Иван", *resp.CustomerName)

	// Денежная разбивка: 1000 + 3.5% сбора, 30% аванс онлайн
	assert.Equal(t, "1000", resp.Subtotal.String())
	assert.Equal(t, "35", resp.PlatformFee.String())
	assert.Equal(t, "335", resp.OnlineAmount.String())
	assert.Equal(t, "700", resp.VenueAmount.String())
	assert.Equal(t, "1035", resp.TotalAmount.String())

	assert.Equal(t, testNow.Add(testLockTTL), resp.HoldExpiresAt)

	// Блокировка удерживается под reference брони
	key := domain.NewSlotKey(7, testDate, "10:00", "11:00").String()
	holder, err := f.locks.Holder(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, resp.Reference, holder)
}

func TestReserveSlotIdempotentReplay(t *testing.T) {
	f := newFixture()
	existing := &domain.Booking{
		ID:        42,
		Reference: "BK-existing",
		UserID:    5,
		Status:    domain.StatusPending,
	}
	f.bookingRepo.byClientRequest["req-1"] = existing

	req := validRequest()
	req.ClientRequestID = ptr.Ptr("req-1")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.True(t, resp.AlreadyExists)
	assert.Nil(t, f.bookingRepo.created, "повтор запроса не должен создавать новую бронь")
}

func TestReserveSlotLockedByAnotherUser(t *testing.T) {
	f := newFixture()
	key := domain.NewSlotKey(7, testDate, "10:00", "11:00").String()
	require.NoError(t, f.locks.Acquire(context.Background(), key, "BK-other", testLockTTL))

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotAlreadyLocked)
}

func TestReserveSlotTakenByActiveBooking(t *testing.T) {
	f := newFixture()
	f.bookingRepo.active = []*domain.Booking{{
		ResourceID:    7,
		BookingDate:   testDate,
		StartTime:     "10:00",
		EndTime:       "11:00",
		Status:        domain.StatusConfirmed,
		HoldExpiresAt: time.Time{},
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// После сбоя блокировка не должна удерживать слот до истечения TTL
	key := domain.NewSlotKey(7, testDate, "10:00", "11:00").String()
	_, err = f.locks.Holder(context.Background(), key)
	assert.ErrorIs(t, err, softlock.ErrNotHeld)
}

func TestReserveSlotExpiredPendingDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.bookingRepo.active = []*domain.Booking{{
		ResourceID:    7,
		BookingDate:   testDate,
		StartTime:     "10:00",
		EndTime:       "11:00",
		Status:        domain.StatusPending,
		HoldExpiresAt: testNow.Add(-time.Minute), // окно оплаты истекло
	}}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestReserveSlotAdjacentBookingDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.bookingRepo.active = []*domain.Booking{{
		ResourceID:  7,
		BookingDate: testDate,
		StartTime:   "11:00",
		EndTime:     "12:00",
		Status:      domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err, "граничащая бронь не пересекается со слотом")
}

func TestReserveSlotDisabledWindow(t *testing.T) {
	f := newFixture()
	f.disabledRepo.disabled = []*domain.DisabledSlot{{
		ResourceID: 7,
		SlotDate:   testDate,
		StartTime:  "09:00",
		EndTime:    "12:00",
		Reason:     "Ремонт",
		Enabled:    true,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestReserveSlotCreateFailureReleasesLock(t *testing.T) {
	f := newFixture()
	f.bookingRepo.createErr = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)

	key := domain.NewSlotKey(7, testDate, "10:00", "11:00").String()
	_, err = f.locks.Holder(context.Background(), key)
	assert.ErrorIs(t, err, softlock.ErrNotHeld)
}

func TestReserveSlotConcurrentDuplicateClientRequest(t *testing.T) {
	// Параллельный повтор успел вставить бронь между пре-проверкой и Create:
	// ограничение БД превращает гонку в идемпотентный ответ
	f := newFixture()
	existing := &domain.Booking{ID: 77, Reference: "BK-winner", UserID: 5, Status: domain.StatusPending}
	f.bookingRepo.byClientRequest["req-2"] = existing
	f.bookingRepo.lookupMisses = 1 // пре-проверка еще не видит бронь
	f.bookingRepo.createErr = bookingRepo.ErrDuplicateClientRequest

	req := validRequest()
	req.ClientRequestID = ptr.Ptr("req-2")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
	assert.True(t, resp.AlreadyExists)

	// Блокировка проигравшего снята
	key := domain.NewSlotKey(7, testDate, "10:00", "11:00").String()
	_, err = f.locks.Holder(context.Background(), key)
	assert.ErrorIs(t, err, softlock.ErrNotHeld)
}

func TestReserveSlotNotOnGrid(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartTime = "10:30"
	req.EndTime = "11:30"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestReserveSlotDateInPast(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestReserveSlotDateTooFarInFuture(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = testNow.AddDate(0, 0, 31)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestReserveSlotTooLateToBook(t *testing.T) {
	f := newFixture()
	f.configRepo.config.MinBookingNoticeMinutes = 90

	req := validRequest()
	req.Date = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC) // сегодня, сейчас 12:00
	req.StartTime = "13:00"
	req.EndTime = "14:00"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestReserveSlotVenueDisabled(t *testing.T) {
	f := newFixture()
	f.venueClient.venue.Enabled = false

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestReserveSlotResourceFromAnotherVenue(t *testing.T) {
	f := newFixture()
	f.venueClient.resource.VenueID = 99

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestReserveSlotProfileDegradationDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.userClient.profile = nil
	f.userClient.err = userservice.ErrServiceDegraded

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Nil(t, resp.CustomerName)
	assert.Nil(t, resp.CustomerPhone)
}

func TestReserveSlotAppliedPriceRule(t *testing.T) {
	f := newFixture()
	f.ruleRepo.rules = []*domain.PriceRule{{
		ID:         3,
		VenueID:    1,
		ResourceID: 7,
		Name:       "Утренний тариф",
		DayType:    domain.DayTypeAll,
		StartTime:  "10:00",
		EndTime:    "12:00",
		BasePrice:  ptr.Ptr(decimal.NewFromInt(800)),
		Priority:   10,
		Enabled:    true,
	}}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "800", resp.Subtotal.String())
	require.NotNil(t, resp.AppliedRuleID)
	assert.Equal(t, int64(3), *resp.AppliedRuleID)
}
