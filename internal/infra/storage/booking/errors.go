package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateClientRequest возвращается при нарушении уникальности
	// ключа идемпотентности (user_id, client_request_id): параллельный
	// повтор запроса уже создал бронь
	ErrDuplicateClientRequest = errors.New("booking.repository: duplicate client request id")

	// ErrNotPending возвращается, когда CAS перевод статуса не сработал:
	// бронь уже не в статусе pending или окно оплаты истекло
	ErrNotPending = errors.New("booking.repository: booking is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
