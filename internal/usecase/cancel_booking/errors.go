package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrForbidden возвращается, когда инициатор не вправе отменять эту бронь
	ErrForbidden = errors.New("cancel_booking: access denied")

	// ErrInvalidStatus возвращается, когда бронь в статусе, не допускающем отмену
	ErrInvalidStatus = errors.New("cancel_booking: booking status does not allow cancellation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
