package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var (
	// ErrAdminNotFound возвращается, когда администратор не найден
	ErrAdminNotFound = errors.New("admin.repository: admin not found")

	// ErrAdminExists возвращается при повторной регистрации email
	ErrAdminExists = errors.New("admin.repository: admin already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("admin.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("admin.repository: failed to execute query")
)

// Repository репозиторий учётных записей администраторов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория администраторов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmail получает администратора по email (email уже нормализован)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "password_hash", "created_at").
		From("admins").
		Where(squirrel.Eq{"email": email}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var admin domain.Admin
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan admin: %w", ErrExecQuery, err)
	}

	return &admin, nil
}

// Create создает администратора
func (r *Repository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admins").
		Columns("email", "password_hash").
		Values(admin.Email, admin.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&admin.ID, &admin.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrAdminExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return admin, nil
}
