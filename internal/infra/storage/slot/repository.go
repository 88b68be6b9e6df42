package slot

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

var slotColumns = []string{
	"id",
	"provider_id",
	"resource_id",
	"start_time",
	"end_time",
	"duration_minutes",
	"slot_type",
	"max_bookings",
	"current_bookings",
	"is_available",
	"is_bookable",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"specialty",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
// Если в контексте передана активная транзакция, использует её -
// проверка конфликтов и вставка должны выполняться в одной транзакции,
// чтобы между чтением пересечений и записью не возникло окно гонки
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"provider_id",
			"resource_id",
			"start_time",
			"end_time",
			"duration_minutes",
			"slot_type",
			"max_bookings",
			"current_bookings",
			"is_available",
			"is_bookable",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"specialty",
			"notes",
		).
		Values(
			s.ProviderID,
			s.ResourceID,
			s.StartTime,
			s.EndTime,
			s.DurationMinutes,
			s.SlotType,
			s.MaxBookings,
			s.CurrentBookings,
			s.IsAvailable,
			s.IsBookable,
			s.BufferBeforeMinutes,
			s.BufferAfterMinutes,
			s.Specialty,
			s.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlotRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// Update обновляет все изменяемые поля слота
// Счётчик current_bookings этим методом не трогается - он меняется
// только атомарными ReserveSeat/ReleaseSeat
func (r *Repository) Update(ctx context.Context, s *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("provider_id", s.ProviderID).
		Set("resource_id", s.ResourceID).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("duration_minutes", s.DurationMinutes).
		Set("slot_type", s.SlotType).
		Set("max_bookings", s.MaxBookings).
		Set("is_available", s.IsAvailable).
		Set("is_bookable", s.IsBookable).
		Set("buffer_before_minutes", s.BufferBeforeMinutes).
		Set("buffer_after_minutes", s.BufferAfterMinutes).
		Set("specialty", s.Specialty).
		Set("notes", s.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
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
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот
// Удаление разрешено только при current_bookings = 0; условие входит в сам
// DELETE, чтобы проверка и удаление были одной атомарной операцией
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"current_bookings": 0}).
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
		// Различаем "нет слота" и "слот занят бронированиями"
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrSlotNotFound
		}
		return ErrSlotHasBookings
	}

	return nil
}

// FindOverlapping находит доступные слоты провайдера (и, опционально, ресурса),
// пересекающиеся с указанным интервалом
// Пересечение полуинтервалов: start_time < interval.End AND end_time > interval.Start;
// граничащие слоты (end = start) пересечением не считаются
func (r *Repository) FindOverlapping(
	ctx context.Context,
	providerID int64,
	resourceID *int64,
	interval domain.Interval,
	excludeSlotID *int64,
) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Lt{"start_time": interval.End}).
		Where(squirrel.Gt{"end_time": interval.Start}).
		OrderBy("start_time ASC")

	if resourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *resourceID})
	}
	if excludeSlotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeSlotID})
	}

	// Внутри транзакции создания блокируем найденные строки,
	// чтобы конкурирующая вставка не прошла между проверкой и записью
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// FindWithFilter находит слоты по критериям поиска
func (r *Repository) FindWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		OrderBy("start_time ASC")

	if filter.ProviderID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.Specialty != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialty": *filter.Specialty})
	}
	if filter.SlotType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_type": *filter.SlotType})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.EndDate})
	}
	if filter.OnlyAvailable {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"is_available": true}).
			Where(squirrel.Eq{"is_bookable": true}).
			Where(squirrel.Expr("current_bookings < max_bookings"))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// FindByProviderAndDateRange находит слоты провайдера, начинающиеся в [from, to)
// Используется при построении сетки доступности
func (r *Repository) FindByProviderAndDateRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByProviderAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByProviderAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ReserveSeat атомарно занимает одно место в слоте
// Проверка и инкремент выполняются одним условным UPDATE на уровне хранилища -
// два конкурентных вызова не могут оба увидеть свободное место и переполнить слот
func (r *Repository) ReserveSeat(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Eq{"is_bookable": true}).
		Where(squirrel.Expr("current_bookings < max_bookings")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReserveSeat - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReserveSeat - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveSeat - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Условный UPDATE не прошёл - выясняем причину для вызывающей стороны
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return ErrSlotNotFound
	}
	if s.IsFull() {
		return ErrSlotFull
	}
	return ErrSlotUnavailable
}

// ReleaseSeat атомарно освобождает одно место в слоте
// Счётчик не опускается ниже нуля; отсутствие слота или нулевой счётчик -
// не ошибка, операция идемпотентна
func (r *Repository) ReleaseSeat(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_bookings", squirrel.Expr("current_bookings - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"current_bookings": 0}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseSeat - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseSeat - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// scanSlotRow сканирует одну строку в слот
func (r *Repository) scanSlotRow(row *sql.Row) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.ProviderID,
		&s.ResourceID,
		&s.StartTime,
		&s.EndTime,
		&s.DurationMinutes,
		&s.SlotType,
		&s.MaxBookings,
		&s.CurrentBookings,
		&s.IsAvailable,
		&s.IsBookable,
		&s.BufferBeforeMinutes,
		&s.BufferAfterMinutes,
		&s.Specialty,
		&s.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.ProviderID,
			&s.ResourceID,
			&s.StartTime,
			&s.EndTime,
			&s.DurationMinutes,
			&s.SlotType,
			&s.MaxBookings,
			&s.CurrentBookings,
			&s.IsAvailable,
			&s.IsBookable,
			&s.BufferBeforeMinutes,
			&s.BufferAfterMinutes,
			&s.Specialty,
			&s.Notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
