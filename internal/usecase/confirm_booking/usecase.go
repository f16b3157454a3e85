package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	bookingRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/booking"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/invoiceservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/ledgerservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
)

// UseCase use case подтверждения оплаты брони платежным шлюзом
type UseCase struct {
	bookingRepo   BookingRepository
	locks         LockManager
	ledgerClient  LedgerServiceClient
	invoiceClient InvoiceServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	locks LockManager,
	ledgerClient LedgerServiceClient,
	invoiceClient InvoiceServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		locks:         locks,
		ledgerClient:  ledgerClient,
		invoiceClient: invoiceClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет подтверждение оплаты.
//
// Перевод pending -> confirmed выполняется CAS запросом с проверкой окна
// оплаты: гонка с фоновой зачисткой просроченных броней разрешается на
// стороне БД. Повторное подтверждение идемпотентно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%d, payment_ref=%s", req.BookingID, req.PaymentRef)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бронь
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Повторное подтверждение - идемпотентный no-op
	if booking.Status == domain.StatusConfirmed {
		uc.logger.Info("ConfirmBooking: booking id=%d is already confirmed", req.BookingID)
		return toResponse(booking, true), nil
	}

	// 5. Проверяем статус и окно оплаты
	if booking.Status != domain.StatusPending {
		uc.logger.Warn("ConfirmBooking: booking id=%d has status %s", req.BookingID, booking.Status)
		return nil, ErrInvalidStatus
	}
	if booking.HoldLapsed(now) {
		uc.logger.Warn("ConfirmBooking: payment window for booking id=%d expired at %s",
			req.BookingID, booking.HoldExpiresAt)
		return nil, ErrHoldExpired
	}

	// 6. CAS перевод pending -> confirmed с проверкой окна оплаты
	if err := uc.bookingRepo.Confirm(ctx, req.BookingID, req.PaymentRef, now); err != nil {
		if errors.Is(err, bookingRepo.ErrNotPending) {
			// Статус изменился между чтением и переводом: перечитываем,
			// чтобы отличить гонку подтверждений от истекшего окна
			return uc.resolveConfirmRace(ctx, req.BookingID, now)
		}
		uc.logger.Error("ConfirmBooking: failed to confirm booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
	}

	// 7. Снимаем мягкую блокировку: слот занят бронью, блокировка больше не нужна
	key := booking.SlotKey().String()
	if err := uc.locks.Release(ctx, key, booking.Reference); err != nil && !errors.Is(err, softlock.ErrNotHeld) {
		uc.logger.Warn("ConfirmBooking: failed to release lock on %s: %v", key, err)
	}

	// 8. Перечитываем бронь для ответа и уведомлений
	confirmed, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to reload booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	// 9. Уведомляем финансовый реестр и сервис документов. Бронь уже
	// подтверждена: сбой уведомления логируется, но не откатывает статус
	uc.notifyDownstream(ctx, confirmed, req.PaymentRef)

	uc.logger.Info("ConfirmBooking: booking id=%d confirmed, reference=%s", confirmed.ID, confirmed.Reference)

	return toResponse(confirmed, false), nil
}

// resolveConfirmRace разбирает проигранную гонку CAS перевода
func (uc *UseCase) resolveConfirmRace(ctx context.Context, bookingID int64, now time.Time) (*Response, error) {
	current, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to reload booking id=%d after CAS miss: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	switch {
	case current.Status == domain.StatusConfirmed:
		// Параллельное подтверждение успело раньше - идемпотентный результат
		uc.logger.Info("ConfirmBooking: booking id=%d was confirmed concurrently", bookingID)
		return toResponse(current, true), nil
	case current.Status == domain.StatusExpired || current.HoldLapsed(now):
		uc.logger.Warn("ConfirmBooking: payment window for booking id=%d expired during confirmation", bookingID)
		return nil, ErrHoldExpired
	default:
		uc.logger.Warn("ConfirmBooking: booking id=%d has status %s after CAS miss", bookingID, current.Status)
		return nil, ErrInvalidStatus
	}
}

// notifyDownstream отправляет уведомления о подтвержденной брони
func (uc *UseCase) notifyDownstream(ctx context.Context, b *domain.Booking, paymentRef string) {
	record := ledgerservice.RevenueRecord{
		BookingReference: b.Reference,
		VenueID:          b.VenueID,
		Currency:         b.Currency,
		TotalAmount:      b.TotalAmount,
		PlatformFee:      b.PlatformFee,
		OnlineAmount:     b.OnlineAmount,
		VenueAmount:      b.VenueAmount,
		PaymentRef:       paymentRef,
	}
	if err := uc.ledgerClient.RecordBookingRevenue(ctx, record); err != nil {
		uc.logger.Error("ConfirmBooking: failed to record revenue for booking id=%d: %v", b.ID, err)
	}

	confirmation := invoiceservice.BookingConfirmation{
		BookingReference: b.Reference,
		UserID:           b.UserID,
		VenueID:          b.VenueID,
		VenueName:        b.VenueName,
		ResourceName:     b.ResourceName,
		BookingDate:      b.BookingDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		Currency:         b.Currency,
		TotalAmount:      b.TotalAmount,
		PaymentRef:       paymentRef,
	}
	if err := uc.invoiceClient.NotifyBookingConfirmed(ctx, confirmation); err != nil {
		uc.logger.Error("ConfirmBooking: failed to notify invoice service for booking id=%d: %v", b.ID, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.PaymentRef == "" {
		return fmt.Errorf("%w: paymentRef is required", ErrInvalidInput)
	}
	return nil
}

// toResponse конвертирует доменную бронь в response
func toResponse(b *domain.Booking, alreadyConfirmed bool) *Response {
	return &Response{
		ID:               b.ID,
		Reference:        b.Reference,
		Status:           string(b.Status),
		BookingDate:      b.BookingDate,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		PaymentRef:       b.PaymentRef,
		ConfirmedAt:      b.ConfirmedAt,
		AlreadyConfirmed: alreadyConfirmed,
	}
}
