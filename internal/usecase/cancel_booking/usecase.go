package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	bookingRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/booking"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
)

// UseCase use case отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	venueClient  VenueServiceClient
	locks        LockManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueClient VenueServiceClient,
	locks LockManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueClient:  venueClient,
		locks:        locks,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет отмену бронирования.
//
// Отменяется только pending бронь: подтвержденная бронь - оплаченная
// услуга, ее судьба решается вне этого сервиса. Отклонение платежа
// (actor=payment) переводит бронь в failed, остальные инициаторы -
// в cancelled. Повторная отмена идемпотентна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%s, caller=%d", req.BookingID, req.Actor, req.CallerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бронь
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Проверяем права инициатора
	if err := uc.authorize(ctx, booking, req); err != nil {
		return nil, err
	}

	// 5. Повторная отмена - идемпотентный no-op
	if booking.IsCancelled() {
		uc.logger.Info("CancelBooking: booking id=%d is already cancelled", req.BookingID)
		return toResponse(booking, true), nil
	}

	// 6. Отменять можно только pending бронь
	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d has status %s", req.BookingID, booking.Status)
		return nil, ErrInvalidStatus
	}

	// 7. CAS перевод pending -> cancelled/failed
	targetStatus := domain.StatusCancelled
	if req.Actor == domain.CancelActorPayment {
		targetStatus = domain.StatusFailed
	}

	reason := ""
	if req.Reason != nil {
		reason = *req.Reason
	}

	if err := uc.bookingRepo.CancelPending(ctx, req.BookingID, targetStatus, req.Actor, reason, now); err != nil {
		if errors.Is(err, bookingRepo.ErrNotPending) {
			// Статус изменился между чтением и переводом: перечитываем
			return uc.resolveCancelRace(ctx, req.BookingID)
		}
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	// 8. Снимаем мягкую блокировку: слот сразу возвращается в доступные
	key := booking.SlotKey().String()
	if err := uc.locks.Release(ctx, key, booking.Reference); err != nil && !errors.Is(err, softlock.ErrNotHeld) {
		uc.logger.Warn("CancelBooking: failed to release lock on %s: %v", key, err)
	}

	// 9. Перечитываем бронь для ответа
	cancelled, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to reload booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: booking id=%d moved to %s by %s", cancelled.ID, cancelled.Status, req.Actor)

	return toResponse(cancelled, false), nil
}

// authorize проверяет право инициатора на отмену брони
func (uc *UseCase) authorize(ctx context.Context, booking *domain.Booking, req *Request) error {
	switch req.Actor {
	case domain.CancelActorUser:
		if booking.UserID != req.CallerID {
			uc.logger.Warn("CancelBooking: user id=%d is not the owner of booking id=%d", req.CallerID, booking.ID)
			return ErrForbidden
		}
		return nil

	case domain.CancelActorVenue:
		venue, err := uc.venueClient.GetVenue(ctx, booking.VenueID)
		if err != nil {
			if errors.Is(err, venueservice.ErrVenueNotFound) {
				uc.logger.Warn("CancelBooking: venue id=%d not found", booking.VenueID)
				return ErrForbidden
			}
			uc.logger.Error("CancelBooking: failed to get venue id=%d: %v", booking.VenueID, err)
			return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
		}
		if !venue.IsManager(req.CallerID) {
			uc.logger.Warn("CancelBooking: user id=%d is not a manager of venue id=%d", req.CallerID, booking.VenueID)
			return ErrForbidden
		}
		return nil

	case domain.CancelActorPayment:
		// Внутренний вызов платежного контура, авторизация на уровне транспорта
		return nil

	default:
		return fmt.Errorf("%w: unknown actor %q", ErrInvalidInput, req.Actor)
	}
}

// resolveCancelRace разбирает проигранную гонку CAS перевода
func (uc *UseCase) resolveCancelRace(ctx context.Context, bookingID int64) (*Response, error) {
	current, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to reload booking id=%d after CAS miss: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	if current.IsCancelled() {
		// Параллельная отмена успела раньше - идемпотентный результат
		uc.logger.Info("CancelBooking: booking id=%d was cancelled concurrently", bookingID)
		return toResponse(current, true), nil
	}

	uc.logger.Warn("CancelBooking: booking id=%d has status %s after CAS miss", bookingID, current.Status)
	return nil, ErrInvalidStatus
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	switch req.Actor {
	case domain.CancelActorUser, domain.CancelActorVenue:
		if req.CallerID <= 0 {
			return fmt.Errorf("%w: callerID must be positive", ErrInvalidInput)
		}
	case domain.CancelActorPayment:
	default:
		return fmt.Errorf("%w: unknown actor %q", ErrInvalidInput, req.Actor)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// toResponse конвертирует доменную бронь в response
func toResponse(b *domain.Booking, alreadyCancelled bool) *Response {
	return &Response{
		ID:                 b.ID,
		Reference:          b.Reference,
		Status:             string(b.Status),
		CancelledBy:        b.CancelledBy,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		AlreadyCancelled:   alreadyCancelled,
	}
}
