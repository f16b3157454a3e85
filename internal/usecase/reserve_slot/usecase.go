package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	bookingRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/booking"
	configRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/slotconfig"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/pricing"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/slotgen"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/ptr"
)

// Params бизнес-параметры резервирования
type Params struct {
	// TTL мягкой блокировки слота (окно оплаты)
	LockTTL time.Duration
	// Процент платформенного сбора поверх стоимости слота
	PlatformFeePercent decimal.Decimal
	// Доля стоимости слота, оплачиваемая онлайн при бронировании
	AdvanceSharePercent decimal.Decimal
}

// UseCase use case резервирования слота
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	ruleRepo     PriceRuleRepository
	disabledRepo DisabledSlotRepository
	venueClient  VenueServiceClient
	userClient   UserServiceClient
	locks        LockManager
	txManager    TransactionManager
	params       Params
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
	userClient UserServiceClient,
	locks LockManager,
	txManager TransactionManager,
	params Params,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		ruleRepo:     ruleRepo,
		disabledRepo: disabledRepo,
		venueClient:  venueClient,
		userClient:   userClient,
		locks:        locks,
		txManager:    txManager,
		params:       params,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет резервирование слота.
//
// Бронь проходит через мягкую блокировку (окно оплаты) и сериализуемую
// транзакцию с повторной проверкой занятости: блокировка отсеивает
// конкурентов заранее, инвариант "не больше одной живой брони на слот"
// обеспечивает транзакция.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: user=%d, venue=%d, resource=%d, date=%s, slot=%s-%s",
		req.UserID, req.VenueID, req.ResourceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Идемпотентность: повтор запроса с тем же client_request_id
	// возвращает ранее созданную бронь без побочных эффектов
	if req.ClientRequestID != nil {
		existing, err := uc.bookingRepo.GetByUserAndClientRequestID(ctx, req.UserID, *req.ClientRequestID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("ReserveSlot: failed to check client_request_id: %v", err)
			return nil, fmt.Errorf("%w: failed to check client request id: %v", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Info("ReserveSlot: idempotent replay, returning booking id=%d", existing.ID)
			return toResponse(existing, true), nil
		}
	}

	// 4. Получаем площадку
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueservice.ErrVenueNotFound) {
			uc.logger.Warn("ReserveSlot: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	if !venue.Enabled {
		uc.logger.Warn("ReserveSlot: venue id=%d is disabled", req.VenueID)
		return nil, ErrVenueNotFound
	}

	// 5. Получаем ресурс и проверяем принадлежность площадке
	resource, err := uc.venueClient.GetResource(ctx, req.VenueID, req.ResourceID)
	if err != nil {
		if errors.Is(err, venueservice.ErrResourceNotFound) {
			uc.logger.Warn("ReserveSlot: resource id=%d not found in venue id=%d", req.ResourceID, req.VenueID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}
	if !resource.Enabled || resource.VenueID != req.VenueID {
		uc.logger.Warn("ReserveSlot: resource id=%d is disabled or belongs to another venue", req.ResourceID)
		return nil, ErrResourceNotFound
	}

	// 6. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.VenueID, ptr.Ptr(req.ResourceID))
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("ReserveSlot: no slot config for venue=%d, resource=%d", req.VenueID, req.ResourceID)
			return nil, ErrConfigNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 7. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("ReserveSlot: date validation failed: %v", err)
		return nil, err
	}

	// 8. Проверяем, что окно запроса совпадает со слотом сетки ресурса
	slots := slotgen.Generate(config, req.Date)
	slot, found := slotgen.FindSlot(slots, req.StartTime, req.EndTime)
	if !found {
		uc.logger.Warn("ReserveSlot: slot %s-%s does not exist in the grid", req.StartTime, req.EndTime)
		return nil, ErrInvalidTimeSlot
	}

	// 9. Валидация минимального времени до начала брони
	if err := validateBookingNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("ReserveSlot: notice validation failed: %v", err)
		return nil, err
	}

	// 10. Предварительная проверка занятости вне транзакции: окна блокировок
	// администратора неизменны в рамках запроса, брони перепроверим под FOR UPDATE
	disabled, err := uc.disabledRepo.GetActiveByResourceAndDate(ctx, req.ResourceID, req.Date)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to get disabled slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get disabled slots: %v", ErrInternal, err)
	}
	for _, d := range disabled {
		if d.Enabled && d.Overlaps(slot.StartTime, slot.EndTime) {
			uc.logger.Warn("ReserveSlot: slot %s-%s is administratively disabled", req.StartTime, req.EndTime)
			return nil, ErrSlotUnavailable
		}
	}

	// 11. Вычисляем стоимость слота по правилам цен
	rules, err := uc.ruleRepo.GetActiveByResource(ctx, req.VenueID, req.ResourceID)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to get price rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get price rules: %v", ErrInternal, err)
	}

	quote, err := pricing.ResolveSlotPrice(config, rules, slot.StartTime, slot.EndTime, req.Date)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to resolve price: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve price: %v", ErrInternal, err)
	}

	// 12. Захватываем мягкую блокировку слота. Reference брони служит
	// holder token: повторный захват тем же reference идемпотентен
	reference := "BK-" + uuid.NewString()
	key := domain.NewSlotKey(req.ResourceID, req.Date, slot.StartTime, slot.EndTime).String()

	if err := uc.locks.Acquire(ctx, key, reference, uc.params.LockTTL); err != nil {
		if errors.Is(err, softlock.ErrAlreadyLocked) {
			uc.logger.Warn("ReserveSlot: slot %s is locked by another user", key)
			return nil, ErrSlotAlreadyLocked
		}
		uc.logger.Error("ReserveSlot: failed to acquire lock on %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to acquire slot lock: %v", ErrInternal, err)
	}

	// 13. Получаем профиль пользователя с graceful degradation:
	// недоступность UserService не блокирует бронирование
	var customerName, customerPhone *string
	profile, err := uc.userClient.GetProfileWithGracefulDegradation(ctx, req.UserID)
	if err == nil && profile != nil {
		customerName = &profile.Name
		customerPhone = &profile.Phone
	}

	breakdown := pricing.ComputeBreakdown(quote.Price, uc.params.PlatformFeePercent, uc.params.AdvanceSharePercent)

	// 14. Создаем бронь в сериализуемой транзакции с повторной проверкой занятости
	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 14.1. Перепроверяем занятость под FOR UPDATE: блокировка - лишь
		// соглашение о вежливости, инвариант обеспечивается здесь
		active, err := uc.bookingRepo.GetActiveByResourceAndDate(txCtx, req.ResourceID, req.Date)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to get active bookings: %v", err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		for _, b := range active {
			if !b.IsBlocking(now) {
				continue
			}
			// Строгие неравенства: граничащие интервалы не пересекаются
			if b.StartTime.IsBefore(slot.EndTime) && b.EndTime.IsAfter(slot.StartTime) {
				uc.logger.Warn("ReserveSlot: slot %s is taken by booking id=%d", key, b.ID)
				return ErrSlotUnavailable
			}
		}

		// 14.2. Сохраняем pending бронь с зафиксированной денежной разбивкой
		booking := &domain.Booking{
			Reference:  reference,
			UserID:     req.UserID,
			VenueID:    req.VenueID,
			ResourceID: req.ResourceID,

			BookingDate:     req.Date,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			DurationMinutes: slot.DurationMinutes,
			Status:          domain.StatusPending,

			VenueName:     venue.Name,
			ResourceName:  resource.Name,
			CustomerName:  customerName,
			CustomerPhone: customerPhone,

			Currency:           domain.DefaultCurrency,
			Subtotal:           breakdown.Subtotal,
			PlatformFeePercent: breakdown.PlatformFeePercent,
			PlatformFee:        breakdown.PlatformFee,
			OnlineAmount:       breakdown.OnlineAmount,
			VenueAmount:        breakdown.VenueAmount,
			TotalAmount:        breakdown.TotalAmount,
			AppliedRuleID:      quote.AppliedRuleID,

			ClientRequestID: req.ClientRequestID,
			HoldExpiresAt:   now.Add(uc.params.LockTTL),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		// Блокировка снимается при любом сбое после захвата, чтобы не
		// удерживать слот до истечения TTL
		uc.releaseLock(ctx, key, reference)

		// Параллельный повтор с тем же client_request_id успел создать
		// бронь - возвращаем ее как идемпотентный результат
		if errors.Is(err, bookingRepo.ErrDuplicateClientRequest) && req.ClientRequestID != nil {
			existing, lookupErr := uc.bookingRepo.GetByUserAndClientRequestID(ctx, req.UserID, *req.ClientRequestID)
			if lookupErr != nil {
				uc.logger.Error("ReserveSlot: failed to fetch booking after duplicate client_request_id: %v", lookupErr)
				return nil, fmt.Errorf("%w: failed to fetch existing booking: %v", ErrInternal, lookupErr)
			}
			uc.logger.Info("ReserveSlot: concurrent idempotent replay, returning booking id=%d", existing.ID)
			return toResponse(existing, true), nil
		}

		if errors.Is(err, ErrSlotUnavailable) {
			return nil, err
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("ReserveSlot: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("ReserveSlot: created booking id=%d, reference=%s, hold until %s",
		result.ID, result.Reference, result.HoldExpiresAt.Format(time.RFC3339))

	return toResponse(result, false), nil
}

// releaseLock снимает блокировку, не считая отсутствие блокировки ошибкой
func (uc *UseCase) releaseLock(ctx context.Context, key, holder string) {
	if err := uc.locks.Release(ctx, key, holder); err != nil && !errors.Is(err, softlock.ErrNotHeld) {
		uc.logger.Error("ReserveSlot: failed to release lock on %s: %v", key, err)
	}
}

// toResponse конвертирует доменную бронь в response
func toResponse(b *domain.Booking, alreadyExists bool) *Response {
	return &Response{
		ID:         b.ID,
		Reference:  b.Reference,
		UserID:     b.UserID,
		VenueID:    b.VenueID,
		ResourceID: b.ResourceID,

		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
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

		HoldExpiresAt: b.HoldExpiresAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,

		AlreadyExists: alreadyExists,
	}
}
