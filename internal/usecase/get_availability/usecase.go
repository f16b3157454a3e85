package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/availability"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	configRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/slotconfig"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/slotgen"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/ptr"
)

// UseCase use case получения доступности слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	ruleRepo     PriceRuleRepository
	disabledRepo DisabledSlotRepository
	venueClient  VenueServiceClient
	locks        LockManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	ruleRepo PriceRuleRepository,
	disabledRepo DisabledSlotRepository,
	venueClient VenueServiceClient,
	locks LockManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		ruleRepo:     ruleRepo,
		disabledRepo: disabledRepo,
		venueClient:  venueClient,
		locks:        locks,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности.
// Проекция read-only: ничего не создает, не продлевает и не снимает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: venue=%d, resource=%d, date=%s",
		req.VenueID, req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем площадку
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueservice.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailability: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	if !venue.Enabled {
		uc.logger.Warn("GetAvailability: venue id=%d is disabled", req.VenueID)
		return nil, ErrVenueNotFound
	}

	// 4. Получаем ресурс и проверяем принадлежность площадке
	resource, err := uc.venueClient.GetResource(ctx, req.VenueID, req.ResourceID)
	if err != nil {
		if errors.Is(err, venueservice.ErrResourceNotFound) {
			uc.logger.Warn("GetAvailability: resource id=%d not found in venue id=%d", req.ResourceID, req.VenueID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}
	if !resource.Enabled || resource.VenueID != req.VenueID {
		uc.logger.Warn("GetAvailability: resource id=%d is disabled or belongs to another venue", req.ResourceID)
		return nil, ErrResourceNotFound
	}

	// 5. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.VenueID, ptr.Ptr(req.ResourceID))
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("GetAvailability: no slot config for venue=%d, resource=%d", req.VenueID, req.ResourceID)
			return nil, ErrConfigNotFound
		}
		uc.logger.Error("GetAvailability: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 6. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 7. Генерируем слоты дня и отсеиваем сегодняшние слоты ближе minNotice
	slots := slotgen.Generate(config, req.Date)
	slots = slotgen.FilterByNotice(slots, req.Date, now, config.MinBookingNoticeMinutes)

	// 8. Загружаем брони и окна блокировок на дату
	bookings, err := uc.bookingRepo.GetActiveByResourceAndDate(ctx, req.ResourceID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	disabled, err := uc.disabledRepo.GetActiveByResourceAndDate(ctx, req.ResourceID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get disabled slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get disabled slots: %v", ErrInternal, err)
	}

	rules, err := uc.ruleRepo.GetActiveByResource(ctx, req.VenueID, req.ResourceID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get price rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get price rules: %v", ErrInternal, err)
	}

	// 9. Собираем ключи слотов с активной мягкой блокировкой
	heldKeys := uc.collectHeldKeys(ctx, slots, req.ResourceID, req.Date)

	// 10. Проецируем слоты на брони, окна блокировок и мягкие блокировки
	views, err := availability.Project(availability.Input{
		Config:     config,
		Rules:      rules,
		Slots:      slots,
		Bookings:   bookings,
		Disabled:   disabled,
		HeldKeys:   heldKeys,
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Now:        now,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: projection failed: %v", err)
		return nil, fmt.Errorf("%w: projection failed: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: venue=%d, resource=%d, date=%s: %d slots",
		req.VenueID, req.ResourceID, req.Date.Format(domain.DateFormat), len(views))

	return &Response{
		VenueID:      req.VenueID,
		ResourceID:   req.ResourceID,
		ResourceName: resource.Name,
		Date:         req.Date,
		Slots:        views,
	}, nil
}

// collectHeldKeys опрашивает менеджер блокировок по каждому слоту дня.
// Сбой опроса не валит запрос: слот без информации о блокировке
// показывается доступным, конфликт все равно всплывет при резервировании.
func (uc *UseCase) collectHeldKeys(
	ctx context.Context,
	slots []domain.GeneratedSlot,
	resourceID int64,
	date time.Time,
) map[string]struct{} {
	held := make(map[string]struct{})

	for _, slot := range slots {
		key := slot.Key(resourceID, date).String()

		_, err := uc.locks.Holder(ctx, key)
		switch {
		case err == nil:
			held[key] = struct{}{}
		case errors.Is(err, softlock.ErrNotHeld):
			// Слот не удерживается
		default:
			uc.logger.Warn("GetAvailability: failed to check lock on %s: %v", key, err)
		}
	}

	return held
}
