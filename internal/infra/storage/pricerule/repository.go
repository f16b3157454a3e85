package pricerule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/dbmetrics"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/psqlbuilder"
)

// priceRuleColumns список колонок таблицы price_rules в порядке сканирования
var priceRuleColumns = []string{
	"id",
	"venue_id",
	"resource_id",
	"name",
	"day_type",
	"on_date",
	"start_time",
	"end_time",
	"base_price",
	"extra_charge",
	"priority",
	"enabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил цен
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил цен
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило цены
func (r *Repository) Create(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("price_rules").
		Columns(
			"venue_id",
			"resource_id",
			"name",
			"day_type",
			"on_date",
			"start_time",
			"end_time",
			"base_price",
			"extra_charge",
			"priority",
			"enabled",
		).
		Values(
			rule.VenueID,
			rule.ResourceID,
			rule.Name,
			rule.DayType,
			rule.OnDate,
			rule.StartTime,
			rule.EndTime,
			rule.BasePrice,
			rule.ExtraCharge,
			rule.Priority,
			rule.Enabled,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило цены по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(priceRuleColumns...).
		From("price_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetActiveByResource получает включенные правила ресурса.
// Сортировка по (priority DESC, id ASC) не обязательна для корректности -
// выбор правила детерминирован на стороне pricing - но делает выдачу стабильной.
func (r *Repository) GetActiveByResource(ctx context.Context, venueID, resourceID int64) ([]*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(priceRuleColumns...).
		From("price_rules").
		Where(squirrel.Eq{
			"venue_id":    venueID,
			"resource_id": resourceID,
			"enabled":     true,
		}).
		OrderBy("priority DESC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// GetAllByVenue получает все правила площадки, включая выключенные
func (r *Repository) GetAllByVenue(ctx context.Context, venueID int64) ([]*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(priceRuleColumns...).
		From("price_rules").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("resource_id ASC, priority DESC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// Disable выключает правило цены (soft delete).
// Правила физически не удаляются, пока на них могут ссылаться брони.
func (r *Repository) Disable(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("price_rules").
		Set("enabled", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Disable - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Disable - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Disable - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRule сканирует одну строку в правило цены
func scanRule(row rowScanner) (*domain.PriceRule, error) {
	var rule domain.PriceRule
	var basePrice, extraCharge decimal.NullDecimal
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.VenueID,
		&rule.ResourceID,
		&rule.Name,
		&rule.DayType,
		&rule.OnDate,
		&rule.StartTime,
		&rule.EndTime,
		&basePrice,
		&extraCharge,
		&rule.Priority,
		&rule.Enabled,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if basePrice.Valid {
		rule.BasePrice = &basePrice.Decimal
	}
	if extraCharge.Valid {
		rule.ExtraCharge = &extraCharge.Decimal
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// scanRules сканирует результаты запроса в слайс правил
func scanRules(rows *sql.Rows) ([]*domain.PriceRule, error) {
	rules := make([]*domain.PriceRule, 0)

	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
