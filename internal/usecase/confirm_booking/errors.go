package confirm_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrHoldExpired возвращается, когда окно оплаты истекло до подтверждения
	ErrHoldExpired = errors.New("confirm_booking: payment window has expired")

	// ErrInvalidStatus возвращается, когда бронь в статусе, не допускающем подтверждение
	ErrInvalidStatus = errors.New("confirm_booking: booking status does not allow confirmation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
