package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/canchub/court-booking-service/internal/domain"
	"github.com/canchub/court-booking-service/pkg/dbmetrics"
	"github.com/canchub/court-booking-service/pkg/psqlbuilder"
	"github.com/canchub/court-booking-service/pkg/types"
)

// uniqueViolation код ошибки PostgreSQL для unique constraint
const uniqueViolation = "23505"

var scheduleColumns = []string{
	"id",
	"court_id",
	"weekday",
	"open_time",
	"close_time",
	"slot_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами расписания площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает правило расписания
// На пару (court_id, weekday) допускается ровно одно правило,
// дубликат транслируется в ErrScheduleExists
func (r *Repository) Create(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_rules").
		Columns("court_id", "weekday", "open_time", "close_time", "slot_minutes").
		Values(rule.CourtID, rule.Weekday, rule.OpenTime.String(), rule.CloseTime.String(), rule.SlotMinutes).
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
		if isUniqueViolation(err) {
			return nil, ErrScheduleExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// GetByID получает правило расписания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetByCourtAndWeekday получает правило расписания площадки на день недели
// Возвращает ErrScheduleNotFound, если на этот день площадка закрыта
func (r *Repository) GetByCourtAndWeekday(ctx context.Context, courtID int64, weekday int) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"court_id": courtID, "weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndWeekday - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// ListByCourt получает все правила расписания площадки
func (r *Repository) ListByCourt(ctx context.Context, courtID int64) ([]*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.ScheduleRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCourt - scan rule: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCourt - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Update обновляет правило расписания
func (r *Repository) Update(ctx context.Context, rule *domain.ScheduleRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_rules").
		Set("weekday", rule.Weekday).
		Set("open_time", rule.OpenTime.String()).
		Set("close_time", rule.CloseTime.String()).
		Set("slot_minutes", rule.SlotMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrScheduleExists
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// Delete удаляет правило расписания
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_rules").
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
		return ErrScheduleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.ScheduleRule, error) {
	var rule domain.ScheduleRule
	var openTime, closeTime string

	err := row.Scan(
		&rule.ID,
		&rule.CourtID,
		&rule.Weekday,
		&openTime,
		&closeTime,
		&rule.SlotMinutes,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.OpenTime, err = types.NewTimeStringFromString(openTime)
	if err != nil {
		return nil, err
	}
	rule.CloseTime, err = types.NewTimeStringFromString(closeTime)
	if err != nil {
		return nil, err
	}

	return &rule, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
