package price

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/canchub/court-booking-service/internal/domain"
	"github.com/canchub/court-booking-service/pkg/dbmetrics"
	"github.com/canchub/court-booking-service/pkg/psqlbuilder"
	"github.com/canchub/court-booking-service/pkg/types"
)

var priceColumns = []string{
	"id",
	"court_id",
	"weekday",
	"start_time",
	"end_time",
	"price_per_slot",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами цен площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория цен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает правило цены
// Проверка пересечения с существующими правилами выполняется на уровне
// сервиса внутри транзакции, здесь только вставка
func (r *Repository) Create(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("price_rules").
		Columns("court_id", "weekday", "start_time", "end_time", "price_per_slot").
		Values(rule.CourtID, rule.Weekday, rule.StartTime.String(), rule.EndTime.String(), rule.PricePerSlot).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// GetByID получает правило цены по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(priceColumns...).
		From("price_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPriceRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// ListByCourtAndWeekday получает правила цен площадки на день недели,
// отсортированные по началу интервала.
// Внутри транзакции строки блокируются FOR UPDATE, чтобы проверка
// пересечений при записи нового правила была атомарной.
func (r *Repository) ListByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) ([]*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(priceColumns...).
		From("price_rules").
		Where(squirrel.Eq{"court_id": courtID, "weekday": weekday}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourtAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourtAndWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// ListByCourt получает все правила цен площадки
func (r *Repository) ListByCourt(ctx context.Context, courtID int64) ([]*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(priceColumns...).
		From("price_rules").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("weekday ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// Update обновляет правило цены
func (r *Repository) Update(ctx context.Context, rule *domain.PriceRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("price_rules").
		Set("weekday", rule.Weekday).
		Set("start_time", rule.StartTime.String()).
		Set("end_time", rule.EndTime.String()).
		Set("price_per_slot", rule.PricePerSlot).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPriceRuleNotFound
	}

	return nil
}

// Delete удаляет правило цены
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("price_rules").
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
		return ErrPriceRuleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.PriceRule, error) {
	var rule domain.PriceRule
	var startTime, endTime string

	err := row.Scan(
		&rule.ID,
		&rule.CourtID,
		&rule.Weekday,
		&startTime,
		&endTime,
		&rule.PricePerSlot,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.StartTime, err = types.NewTimeStringFromString(startTime)
	if err != nil {
		return nil, err
	}
	rule.EndTime, err = types.NewTimeStringFromString(endTime)
	if err != nil {
		return nil, err
	}

	return &rule, nil
}

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
