package timeoff

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

var timeOffColumns = []string{
	"id",
	"provider_id",
	"start_date",
	"end_date",
	"status",
	"type",
	"approver_id",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения заявок на отсутствие провайдеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindApproved находит одобренные отсутствия провайдера, задевающие
// диапазон календарных дат [from, to] (даты заявок включительные)
func (r *Repository) FindApproved(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.TimeOffRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeOffColumns...).
		From("time_off_requests").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"status": domain.TimeOffApproved}).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.GtOrEq{"end_date": from}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindApproved - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindApproved - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.TimeOffRequest, 0)
	for rows.Next() {
		var t domain.TimeOffRequest
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.ProviderID,
			&t.StartDate,
			&t.EndDate,
			&t.Status,
			&t.Type,
			&t.ApproverID,
			&t.Reason,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: FindApproved - scan row: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time

		requests = append(requests, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindApproved - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
