package reserve_slot

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена или выключена
	ErrVenueNotFound = errors.New("reserve_slot: venue not found")

	// ErrResourceNotFound возвращается, когда ресурс не найден или выключен
	ErrResourceNotFound = errors.New("reserve_slot: resource not found")

	// ErrConfigNotFound возвращается, когда для ресурса нет конфигурации слотов
	ErrConfigNotFound = errors.New("reserve_slot: slot configuration not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("reserve_slot: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("reserve_slot: date is too far in the future")

	// ErrTooLateToBook возвращается при нарушении minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("reserve_slot: too late to book this slot")

	// ErrInvalidTimeSlot возвращается, когда окно запроса не совпадает ни с одним слотом сетки
	ErrInvalidTimeSlot = errors.New("reserve_slot: invalid time slot")

	// ErrSlotUnavailable возвращается, когда слот занят бронью или окном блокировки
	ErrSlotUnavailable = errors.New("reserve_slot: slot is not available")

	// ErrSlotAlreadyLocked возвращается, когда слот удерживается другим пользователем
	ErrSlotAlreadyLocked = errors.New("reserve_slot: slot is locked by another user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
