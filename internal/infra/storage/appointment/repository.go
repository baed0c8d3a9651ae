package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// pgUniqueViolation SQLSTATE 23505
	pgUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"pet_name",
	"pet_type",
	"service_name",
	"duration",
	"price",
	"appointment_date",
	"start_time",
	"client_name",
	"client_email",
	"client_phone",
	"status",
	"created_at",
}

// Repository репозиторий записей на груминг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись.
// Если в контексте есть транзакция, запрос выполняется в ней.
// Нарушение уникального индекса активного слота возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"pet_name",
			"pet_type",
			"service_name",
			"duration",
			"price",
			"appointment_date",
			"start_time",
			"client_name",
			"client_email",
			"client_phone",
			"status",
		).
		Values(
			apt.PetName,
			string(apt.PetType),
			apt.ServiceName,
			apt.DurationMinutes,
			apt.Price,
			apt.Date.Format(domain.DateFormat),
			apt.StartTime,
			apt.ClientName,
			apt.ClientEmail,
			apt.ClientPhone,
			string(apt.Status),
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&apt.ID, &apt.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return apt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	apt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return apt, nil
}

// List получает записи по фильтру.
//
// Сортировка: по дате и времени начала, по возрастанию (панель администратора)
// или по убыванию при NewestFirst (история клиента).
// Внутри транзакции выборка за конкретный день блокирует строки (FOR UPDATE) -
// это используется при создании записи.
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.ClientEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_email": *filter.ClientEmail})
	}
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	if filter.NewestFirst {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC", "start_time DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date ASC", "start_time ASC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			// восстановление отменённой записи на уже занятый слот
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete физически удаляет запись (только из панели администратора)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		apt     domain.Appointment
		petType string
		status  string
	)

	err := row.Scan(
		&apt.ID,
		&apt.PetName,
		&petType,
		&apt.ServiceName,
		&apt.DurationMinutes,
		&apt.Price,
		&apt.Date,
		&apt.StartTime,
		&apt.ClientName,
		&apt.ClientEmail,
		&apt.ClientPhone,
		&status,
		&apt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	apt.PetType = domain.PetSize(petType)
	apt.Status = domain.AppointmentStatus(status)

	return &apt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}
