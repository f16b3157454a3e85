package disabledslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/dbmetrics"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/psqlbuilder"
)

// disabledSlotColumns список колонок таблицы disabled_slots в порядке сканирования
var disabledSlotColumns = []string{
	"id",
	"venue_id",
	"resource_id",
	"slot_date",
	"start_time",
	"end_time",
	"reason",
	"enabled",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий окон блокировок администратора
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно блокировки
func (r *Repository) Create(ctx context.Context, slot *domain.DisabledSlot) (*domain.DisabledSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("disabled_slots").
		Columns(
			"venue_id",
			"resource_id",
			"slot_date",
			"start_time",
			"end_time",
			"reason",
			"enabled",
			"created_by",
		).
		Values(
			slot.VenueID,
			slot.ResourceID,
			slot.SlotDate,
			slot.StartTime,
			slot.EndTime,
			slot.Reason,
			slot.Enabled,
			slot.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает окно блокировки по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.DisabledSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(disabledSlotColumns...).
		From("disabled_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDisabledSlotNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetActiveByResourceAndDate получает включенные окна блокировок ресурса на дату
func (r *Repository) GetActiveByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.DisabledSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(disabledSlotColumns...).
		From("disabled_slots").
		Where(squirrel.Eq{
			"resource_id": resourceID,
			"slot_date":   date,
			"enabled":     true,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResourceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResourceAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListByResource получает окна блокировок ресурса за период
func (r *Repository) ListByResource(ctx context.Context, venueID, resourceID int64, from, to *time.Time) ([]*domain.DisabledSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(disabledSlotColumns...).
		From("disabled_slots").
		Where(squirrel.Eq{
			"venue_id":    venueID,
			"resource_id": resourceID,
		}).
		OrderBy("slot_date ASC, start_time ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// Delete удаляет окно блокировки.
// Окна не несут аудиторской нагрузки, физическое удаление допустимо.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("disabled_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDisabledSlotNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует одну строку в окно блокировки
func scanSlot(row rowScanner) (*domain.DisabledSlot, error) {
	var slot domain.DisabledSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.VenueID,
		&slot.ResourceID,
		&slot.SlotDate,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Reason,
		&slot.Enabled,
		&slot.CreatedBy,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс окон блокировок
func scanSlots(rows *sql.Rows) ([]*domain.DisabledSlot, error) {
	slots := make([]*domain.DisabledSlot, 0)

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
