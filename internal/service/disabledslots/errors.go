package disabledslots

import "errors"

var (
	// ErrDisabledSlotNotFound возвращается, когда окно блокировки не найдено
	ErrDisabledSlotNotFound = errors.New("disabled slot not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrResourceNotFound возвращается, когда ресурс не найден на площадке
	ErrResourceNotFound = errors.New("resource not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
