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

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var userColumns = []string{
	"id", "google_id", "name", "email", "avatar_url", "status", "created_at", "updated_at", "last_login_at",
}

var userSortColumns = map[string]string{
	"":              "u.created_at",
	"created_at":    "u.created_at",
	"name":          "u.name",
	"email":         "u.email",
	"last_login_at": "u.last_login_at",
}

func (ur *UserRepository) UpsertGoogleUser(ctx context.Context, p domain.GoogleProfile, now time.Time) (*domain.User, error) {
	const op = "internal.repository.postgres.UpsertGoogleUser"

	var avatar *string
	if p.AvatarURL != "" {
		avatar = &p.AvatarURL
	}

	query, args, err := ur.sq.Insert("users").
		Columns("google_id", "name", "email", "avatar_url", "last_login_at").
		Values(p.GoogleID, p.Name, p.Email, avatar, now).
		Suffix(`ON CONFLICT (google_id) DO UPDATE SET
            email = EXCLUDED.email,
            last_login_at = EXCLUDED.last_login_at,
            updated_at = EXCLUDED.last_login_at
        RETURNING ` + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build upsert query: %w", op, err)
	}

	var u domain.User
	if err := ur.db.QueryRowxContext(ctx, query, args...).StructScan(&u); err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.UserAlreadyExistsError{Email: p.Email})
		}

		return nil, fmt.Errorf("%s: failed to execute upsert: %w", op, err)
	}

	return &u, nil
}

func (ur *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByID"

	query, args, err := ur.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var u domain.User
	if err := ur.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id %d", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return &u, nil
}

func (ur *UserRepository) UpdateProfile(ctx context.Context, id int64, name string, avatarURL *string) (*domain.User, error) {
	const op = "internal.repository.postgres.UpdateProfile"

	query, args, err := ur.sq.Update("users").
		Set("name", name).
		Set("avatar_url", avatarURL).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return ur.updateReturning(ctx, op, id, query, args)
}

func (ur *UserRepository) SetUserStatus(ctx context.Context, id int64, status domain.UserStatus) (*domain.User, error) {
	const op = "internal.repository.postgres.SetUserStatus"

	ur.log.Info("setting user status", slog.String("op", op), slog.Int64("user_id", id), slog.String("status", string(status)))

	query, args, err := ur.sq.Update("users").
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return ur.updateReturning(ctx, op, id, query, args)
}

func (ur *UserRepository) updateReturning(ctx context.Context, op string, id int64, query string, args []any) (*domain.User, error) {
	var u domain.User
	if err := ur.db.QueryRowxContext(ctx, query, args...).StructScan(&u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id %d", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &u, nil
}

func (ur *UserRepository) ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.UserWithCounts, int, error) {
	const op = "internal.repository.postgres.ListUsers"

	sortColumn, ok := userSortColumns[f.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("%s: %w: cannot sort by %q", op, apperrors.ErrValidation, f.SortBy)
	}

	conds := sq.And{}

	if f.Status != nil {
		conds = append(conds, sq.Eq{"u.status": *f.Status})
	}

	if f.Search != "" {
		pattern := containsPattern(f.Search)
		conds = append(conds, sq.Or{sq.ILike{"u.name": pattern}, sq.ILike{"u.email": pattern}})
	}

	countBuilder := ur.sq.Select("COUNT(*)").From("users u")

	cols := make([]string, 0, len(userColumns)+2)
	for _, c := range userColumns {
		cols = append(cols, "u."+c)
	}

	cols = append(cols,
		"COUNT(r.id) AS total_reports",
		"COUNT(r.id) FILTER (WHERE r.status = 'APPROVED') AS approved_reports",
	)

	listBuilder := ur.sq.Select(cols...).
		From("users u").
		LeftJoin("reports r ON r.owner_id = u.id")

	if len(conds) > 0 {
		countBuilder = countBuilder.Where(conds)
		listBuilder = listBuilder.Where(conds)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := ur.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count users: %w", op, err)
	}

	if total == 0 {
		return []domain.UserWithCounts{}, 0, nil
	}

	page := f.Page.Normalize()

	query, args, err := listBuilder.
		GroupBy("u.id").
		OrderBy(
			fmt.Sprintf("%s %s NULLS LAST", sortColumn, orderDirection(f.SortOrder != domain.SortAsc)),
			"u.id DESC",
		).
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var users []domain.UserWithCounts
	if err := ur.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to select users: %w", op, err)
	}

	return users, total, nil
}

func (ur *UserRepository) DeleteUser(ctx context.Context, tx *sqlx.Tx, id int64) error {
	const op = "internal.repository.postgres.DeleteUser"

	query, args, err := ur.sq.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: user with id %d", op, apperrors.ErrNotFound, id)
	}

	return nil
}

func (ur *UserRepository) GetUserStats(ctx context.Context) (*domain.UserStats, error) {
	const op = "internal.repository.postgres.GetUserStats"

	query, args, err := ur.sq.Select(
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE status = 'ACTIVE') AS active",
		"COUNT(*) FILTER (WHERE status = 'SUSPENDED') AS suspended",
		"COUNT(*) FILTER (WHERE created_at >= now() - interval '30 days') AS new_last_month",
	).From("users").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var stats domain.UserStats
	if err := ur.db.GetContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &stats, nil
}
