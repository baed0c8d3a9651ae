package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/psqlbuilder"
)

const (
	businessHoursTable = "business_hours"
	closedDaysTable    = "closed_days"

	pgUniqueViolation = "23505"
)

// Repository репозиторий расписания: часы работы по дням недели и нерабочие даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusinessHour получает часы работы для дня недели (0 = воскресенье)
func (r *Repository) GetBusinessHour(ctx context.Context, dayOfWeek int) (*domain.BusinessHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day_of_week", "open_time", "close_time", "is_closed").
		From(businessHoursTable).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHour - build select query: %v", ErrBuildQuery, err)
	}

	var hour domain.BusinessHour
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hour.ID,
		&hour.DayOfWeek,
		&hour.OpenTime,
		&hour.CloseTime,
		&hour.IsClosed,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessHourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHour - scan business hour: %w", ErrScanRow, err)
	}

	return &hour, nil
}

// ListBusinessHours получает расписание на всю неделю, упорядоченное по дню недели
func (r *Repository) ListBusinessHours(ctx context.Context) ([]*domain.BusinessHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day_of_week", "open_time", "close_time", "is_closed").
		From(businessHoursTable).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.BusinessHour, 0, 7)
	for rows.Next() {
		var hour domain.BusinessHour
		if err := rows.Scan(&hour.ID, &hour.DayOfWeek, &hour.OpenTime, &hour.CloseTime, &hour.IsClosed); err != nil {
			return nil, fmt.Errorf("%w: ListBusinessHours - scan row: %w", ErrScanRow, err)
		}
		hours = append(hours, &hour)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - rows error: %w", ErrScanRow, err)
	}

	return hours, nil
}

// UpsertBusinessHour создает или обновляет часы работы для дня недели
func (r *Repository) UpsertBusinessHour(ctx context.Context, hour *domain.BusinessHour) (*domain.BusinessHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(businessHoursTable).
		Columns("day_of_week", "open_time", "close_time", "is_closed").
		Values(hour.DayOfWeek, hour.OpenTime, hour.CloseTime, hour.IsClosed).
		Suffix("ON CONFLICT (day_of_week) DO UPDATE SET " +
			"open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time, is_closed = EXCLUDED.is_closed " +
			"RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertBusinessHour - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&hour.ID); err != nil {
		return nil, fmt.Errorf("%w: UpsertBusinessHour - execute upsert: %w", ErrExecQuery, err)
	}

	return hour, nil
}

// GetClosedDay получает нерабочий день по дате
func (r *Repository) GetClosedDay(ctx context.Context, date time.Time) (*domain.ClosedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "closed_date", "reason").
		From(closedDaysTable).
		Where(squirrel.Eq{"closed_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClosedDay - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.ClosedDay
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.Date, &day.Reason)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClosedDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetClosedDay - scan closed day: %w", ErrScanRow, err)
	}

	return &day, nil
}

// ListClosedDays получает нерабочие дни начиная с from (nil - все), по возрастанию даты
func (r *Repository) ListClosedDays(ctx context.Context, from *time.Time) ([]*domain.ClosedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "closed_date", "reason").
		From(closedDaysTable).
		OrderBy("closed_date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"closed_date": from.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListClosedDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClosedDays - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.ClosedDay, 0)
	for rows.Next() {
		var day domain.ClosedDay
		if err := rows.Scan(&day.ID, &day.Date, &day.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListClosedDays - scan row: %w", ErrScanRow, err)
		}
		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClosedDays - rows error: %w", ErrScanRow, err)
	}

	return days, nil
}

// CreateClosedDay закрывает дату
func (r *Repository) CreateClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(closedDaysTable).
		Columns("closed_date", "reason").
		Values(day.Date.Format(domain.DateFormat), day.Reason).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateClosedDay - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateClosedDay
		}
		return nil, fmt.Errorf("%w: CreateClosedDay - execute insert: %w", ErrExecQuery, err)
	}

	return day, nil
}

// DeleteClosedDay снова открывает дату
func (r *Repository) DeleteClosedDay(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(closedDaysTable).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteClosedDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteClosedDay - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteClosedDay - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClosedDayNotFound
	}

	return nil
}
