package get_availability

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена или выключена
	ErrVenueNotFound = errors.New("get_availability: venue not found")

	// ErrResourceNotFound возвращается, когда ресурс не найден или выключен
	ErrResourceNotFound = errors.New("get_availability: resource not found")

	// ErrConfigNotFound возвращается, когда для ресурса нет конфигурации слотов
	ErrConfigNotFound = errors.New("get_availability: slot configuration not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("get_availability: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_availability: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
