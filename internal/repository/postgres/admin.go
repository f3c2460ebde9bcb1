package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/jmoiron/sqlx"
)

type AdminRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewAdminRepository(db *sqlx.DB, log *slog.Logger) *AdminRepository {
	return &AdminRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var adminColumns = []string{"id", "username", "password_hash", "role", "created_at", "last_login_at"}

func (ar *AdminRepository) getBy(ctx context.Context, op string, where sq.Eq) (*domain.Admin, error) {
	query, args, err := ar.sq.Select(adminColumns...).
		From("admins").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var a domain.Admin
	if err := ar.db.GetContext(ctx, &a, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: admin", op, apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get admin: %w", op, err)
	}

	return &a, nil
}

func (ar *AdminRepository) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return ar.getBy(ctx, "internal.repository.postgres.GetAdminByUsername", sq.Eq{"username": username})
}

func (ar *AdminRepository) GetAdminByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return ar.getBy(ctx, "internal.repository.postgres.GetAdminByID", sq.Eq{"id": id})
}

func (ar *AdminRepository) CreateAdmin(ctx context.Context, a *domain.Admin) error {
	const op = "internal.repository.postgres.CreateAdmin"

	query, args, err := ar.sq.Insert("admins").
		Columns("username", "password_hash", "role").
		Values(a.Username, a.PasswordHash, a.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := ar.db.QueryRowxContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return &apperrors.AdminAlreadyExistsError{Username: a.Username}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (ar *AdminRepository) TouchAdminLogin(ctx context.Context, id int64, at time.Time) error {
	const op = "internal.repository.postgres.TouchAdminLogin"

	query, args, err := ar.sq.Update("admins").
		Set("last_login_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := ar.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return nil
}
