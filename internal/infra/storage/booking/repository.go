package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/dbmetrics"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"reference",
	"user_id",
	"venue_id",
	"resource_id",
	"venue_name",
	"resource_name",
	"customer_name",
	"customer_phone",
	"booking_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"currency",
	"subtotal",
	"platform_fee_percent",
	"platform_fee",
	"online_amount",
	"venue_amount",
	"total_amount",
	"applied_rule_id",
	"client_request_id",
	"payment_ref",
	"cancelled_by",
	"cancellation_reason",
	"hold_expires_at",
	"confirmed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе pending.
// Нарушение уникальности ключа идемпотентности (user_id, client_request_id)
// транслируется в ErrDuplicateClientRequest: гонка параллельных повторов
// одного запроса закрывается ограничением БД, вызывающая сторона перечитывает
// существующую бронь.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"user_id",
			"venue_id",
			"resource_id",
			"venue_name",
			"resource_name",
			"customer_name",
			"customer_phone",
			"booking_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"currency",
			"subtotal",
			"platform_fee_percent",
			"platform_fee",
			"online_amount",
			"venue_amount",
			"total_amount",
			"applied_rule_id",
			"client_request_id",
			"hold_expires_at",
		).
		Values(
			booking.Reference,
			booking.UserID,
			booking.VenueID,
			booking.ResourceID,
			booking.VenueName,
			booking.ResourceName,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.DurationMinutes,
			booking.Status,
			booking.Currency,
			booking.Subtotal,
			booking.PlatformFeePercent,
			booking.PlatformFee,
			booking.OnlineAmount,
			booking.VenueAmount,
			booking.TotalAmount,
			booking.AppliedRuleID,
			booking.ClientRequestID,
			booking.HoldExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation &&
			strings.Contains(pqErr.Constraint, "client_request") {
			return nil, ErrDuplicateClientRequest
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserAndClientRequestID получает бронирование по ключу идемпотентности.
// Используется для возврата существующей брони при повторе запроса.
func (r *Repository) GetByUserAndClientRequestID(ctx context.Context, userID int64, clientRequestID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "client_request_id": clientRequestID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndClientRequestID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByUserAndClientRequestID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByVenueWithFilter получает бронирования площадки с гибкой фильтрацией:
// по ресурсу, периоду, статусу и включению завершенных бронирований
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByResourceAndDate получает живые брони ресурса на дату
// (pending и confirmed - статусы, способные занимать слот).
// Внутри транзакции строки блокируются FOR UPDATE: повторная проверка
// доступности слота при создании брони должна видеть согласованный срез.
func (r *Repository) GetActiveByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"resource_id":  resourceID,
			"booking_date": date,
			"status":       activeStatusStrings,
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResourceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResourceAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Confirm переводит бронь pending -> confirmed одним CAS запросом.
// Условие по hold_expires_at гарантирует, что подтверждение после истечения
// окна оплаты не пройдет. Ноль затронутых строк - ErrNotPending, вызывающая
// сторона перечитывает бронь и разбирает причину.
func (r *Repository) Confirm(ctx context.Context, id int64, paymentRef string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_ref", paymentRef).
		Set("confirmed_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		Where(squirrel.Gt{"hold_expires_at": now}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

// CancelPending переводит бронь pending -> cancelled/failed одним CAS запросом
func (r *Repository) CancelPending(ctx context.Context, id int64, status domain.BookingStatus, actor domain.CancelActor, reason string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancelled_by", actor).
		Set("cancellation_reason", reason).
		Set("cancelled_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelPending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelPending - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

// ExpireLapsed переводит все pending брони с истекшим окном оплаты в expired
// и возвращает затронутые брони (для освобождения блокировок и логирования).
// Вызывается фоновой зачисткой; TTL сам по себе уже вернул слоты в выдачу,
// зачистка лишь материализует статус.
func (r *Repository) ExpireLapsed(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("cancelled_by", domain.CancelActorSystem).
		Set("cancellation_reason", "окно оплаты истекло").
		Set("cancelled_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.LtOrEq{"hold_expires_at": now}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ExpireLapsed - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireLapsed - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledBy sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.VenueID,
		&booking.ResourceID,
		&booking.VenueName,
		&booking.ResourceName,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.Currency,
		&booking.Subtotal,
		&booking.PlatformFeePercent,
		&booking.PlatformFee,
		&booking.OnlineAmount,
		&booking.VenueAmount,
		&booking.TotalAmount,
		&booking.AppliedRuleID,
		&booking.ClientRequestID,
		&booking.PaymentRef,
		&cancelledBy,
		&booking.CancellationReason,
		&booking.HoldExpiresAt,
		&booking.ConfirmedAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if cancelledBy.Valid {
		actor := domain.CancelActor(cancelledBy.String)
		booking.CancelledBy = &actor
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
