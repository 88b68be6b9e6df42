package schedulerule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/pkg/dbmetrics"
	"github.com/atyusan/blue-card-sub005/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"provider_id",
	"day_of_week",
	"work_start",
	"work_end",
	"break_start",
	"break_end",
	"is_working",
	"slot_duration_minutes",
	"buffer_time_minutes",
	"max_appointments_per_hour",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами расписания провайдеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProvider получает все правила расписания провайдера
func (r *Repository) GetByProvider(ctx context.Context, providerID int64) ([]*domain.ProviderScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("provider_schedule_rules").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.ProviderScheduleRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetByProviderAndWeekday получает правило расписания провайдера на день недели
func (r *Repository) GetByProviderAndWeekday(ctx context.Context, providerID int64, day int) (*domain.ProviderScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("provider_schedule_rules").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"day_of_week": day}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: GetByProviderAndWeekday - rows error: %v", ErrScanRow, err)
		}
		return nil, ErrRuleNotFound
	}

	return scanRule(rows)
}

// Upsert создает или обновляет правило расписания провайдера на день недели
func (r *Repository) Upsert(ctx context.Context, rule *domain.ProviderScheduleRule) (*domain.ProviderScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_schedule_rules").
		Columns(
			"provider_id",
			"day_of_week",
			"work_start",
			"work_end",
			"break_start",
			"break_end",
			"is_working",
			"slot_duration_minutes",
			"buffer_time_minutes",
			"max_appointments_per_hour",
		).
		Values(
			rule.ProviderID,
			int(rule.DayOfWeek),
			rule.WorkStart,
			rule.WorkEnd,
			rule.BreakStart,
			rule.BreakEnd,
			rule.IsWorking,
			rule.SlotDurationMinutes,
			rule.BufferTimeMinutes,
			rule.MaxAppointmentsPerHour,
		).
		Suffix(`ON CONFLICT (provider_id, day_of_week) DO UPDATE SET
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			is_working = EXCLUDED.is_working,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			buffer_time_minutes = EXCLUDED.buffer_time_minutes,
			max_appointments_per_hour = EXCLUDED.max_appointments_per_hour,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

func scanRule(rows *sql.Rows) (*domain.ProviderScheduleRule, error) {
	var rule domain.ProviderScheduleRule
	var dayOfWeek int
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&rule.ID,
		&rule.ProviderID,
		&dayOfWeek,
		&rule.WorkStart,
		&rule.WorkEnd,
		&rule.BreakStart,
		&rule.BreakEnd,
		&rule.IsWorking,
		&rule.SlotDurationMinutes,
		&rule.BufferTimeMinutes,
		&rule.MaxAppointmentsPerHour,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanRule - scan row: %v", ErrScanRow, err)
	}

	rule.DayOfWeek = time.Weekday(dayOfWeek)
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
