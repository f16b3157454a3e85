package slotconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/dbmetrics"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/psqlbuilder"
)

// slotConfigColumns список колонок таблицы slot_configs в порядке сканирования
var slotConfigColumns = []string{
	"id",
	"venue_id",
	"resource_id",
	"opening_time",
	"closing_time",
	"slot_duration_minutes",
	"base_price",
	"weekend_multiplier",
	"weekend_days",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"enabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигураций слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Конфигурация конкретного ресурса (venue_id, resource_id)
// 2. Конфигурация всей площадки (venue_id, NULL)
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, venueID int64, resourceID *int64) (*domain.SlotConfig, error) {
	if resourceID != nil {
		config, err := r.getByVenueAndResource(ctx, venueID, resourceID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
	}

	return r.getByVenueAndResource(ctx, venueID, nil)
}

// GetAllByVenue получает все конфигурации площадки.
// Конфигурация площадки (resource_id IS NULL) возвращается первой.
func (r *Repository) GetAllByVenue(ctx context.Context, venueID int64) ([]*domain.SlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotConfigColumns...).
		From("slot_configs").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("resource_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SlotConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByVenue - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByVenue - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию уровня (venue_id, resource_id).
// Уникальность пары обеспечивает ограничение NULLS NOT DISTINCT в схеме.
func (r *Repository) Upsert(ctx context.Context, config *domain.SlotConfig) (*domain.SlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_configs").
		Columns(
			"venue_id",
			"resource_id",
			"opening_time",
			"closing_time",
			"slot_duration_minutes",
			"base_price",
			"weekend_multiplier",
			"weekend_days",
			"advance_booking_days",
			"min_booking_notice_minutes",
			"enabled",
		).
		Values(
			config.VenueID,
			config.ResourceID,
			config.OpeningTime,
			config.ClosingTime,
			config.SlotDurationMinutes,
			config.BasePrice,
			config.WeekendMultiplier,
			pq.Array(weekendDaysToInt64(config.WeekendDays)),
			config.AdvanceBookingDays,
			config.MinBookingNoticeMinutes,
			config.Enabled,
		).
		Suffix(`ON CONFLICT (venue_id, resource_id) DO UPDATE SET
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			base_price = EXCLUDED.base_price,
			weekend_multiplier = EXCLUDED.weekend_multiplier,
			weekend_days = EXCLUDED.weekend_days,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			enabled = EXCLUDED.enabled,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// getByVenueAndResource ищет конфигурацию точного уровня иерархии
func (r *Repository) getByVenueAndResource(ctx context.Context, venueID int64, resourceID *int64) (*domain.SlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotConfigColumns...).
		From("slot_configs").
		Where(squirrel.Eq{"venue_id": venueID})

	if resourceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *resourceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByVenueAndResource - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: getByVenueAndResource - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConfig сканирует одну строку в конфигурацию
func scanConfig(row rowScanner) (*domain.SlotConfig, error) {
	var config domain.SlotConfig
	var weekendMultiplier decimal.NullDecimal
	var weekendDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.VenueID,
		&config.ResourceID,
		&config.OpeningTime,
		&config.ClosingTime,
		&config.SlotDurationMinutes,
		&config.BasePrice,
		&weekendMultiplier,
		&weekendDays,
		&config.AdvanceBookingDays,
		&config.MinBookingNoticeMinutes,
		&config.Enabled,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if weekendMultiplier.Valid {
		config.WeekendMultiplier = &weekendMultiplier.Decimal
	}
	config.WeekendDays = make([]int, 0, len(weekendDays))
	for _, day := range weekendDays {
		config.WeekendDays = append(config.WeekendDays, int(day))
	}
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// weekendDaysToInt64 конвертирует дни недели для записи в integer[]
func weekendDaysToInt64(days []int) []int64 {
	result := make([]int64, 0, len(days))
	for _, day := range days {
		result = append(result, int64(day))
	}
	return result
}
