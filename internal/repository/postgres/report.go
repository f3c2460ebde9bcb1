package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ReportRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReportRepository(db *sqlx.DB, log *slog.Logger) *ReportRepository {
	return &ReportRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func reportColumns(alias string) []string {
	cols := []string{
		"id", "email", "phone", "facebook_id", "description", "status", "rejection_reason",
		"owner_id", "reviewer_id", "created_at", "updated_at", "approved_at",
	}

	if alias == "" {
		return cols
	}

	for i, c := range cols {
		cols[i] = alias + "." + c
	}

	return cols
}

func (r *ReportRepository) CreateReport(ctx context.Context, ext sqlx.ExtContext, rep *domain.Report) error {
	const op = "internal.repository.postgres.CreateReport"

	query, args, err := r.sq.Insert("reports").
		Columns("email", "phone", "facebook_id", "description", "status", "owner_id").
		Values(rep.Email, rep.Phone, rep.FacebookID, rep.Description, rep.Status, rep.OwnerID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := ext.QueryRowxContext(ctx, query, args...).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt); err != nil {
		switch pgErrorCode(err) {
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: owner of the report", op, apperrors.ErrNotFound)
		case codeCheckViolation:
			return fmt.Errorf("%s: %w: %w", op, apperrors.ErrValidation, err)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *ReportRepository) GetReportByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Report, error) {
	const op = "internal.repository.postgres.GetReportByIDForUpdate"

	query, args, err := r.sq.Select(reportColumns("")...).
		From("reports").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rep domain.Report
	if err := tx.GetContext(ctx, &rep, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: report with id %d", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get report with lock: %w", op, err)
	}

	return &rep, nil
}

func (r *ReportRepository) UpdateReportStatus(
	ctx context.Context,
	tx *sqlx.Tx,
	id int64,
	expected domain.ReportStatus,
	upd domain.StatusUpdate,
) error {
	const op = "internal.repository.postgres.UpdateReportStatus"

	updateBuilder := r.sq.Update("reports").
		Set("status", upd.Status).
		Set("reviewer_id", upd.ReviewerID).
		Set("rejection_reason", upd.RejectionReason).
		Set("updated_at", upd.UpdatedAt).
		Where(sq.Eq{"id": id, "status": expected})

	if upd.ApprovedAt != nil {
		updateBuilder = updateBuilder.Set("approved_at", *upd.ApprovedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if pgErrorCode(err) == codeCheckViolation {
			return fmt.Errorf("%s: %w: %w", op, apperrors.ErrConflict, err)
		}

		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w: report %d is no longer %s", op, apperrors.ErrStatusChanged, id, expected)
	}

	return nil
}

func (r *ReportRepository) DeleteReport(ctx context.Context, tx *sqlx.Tx, id int64) ([]domain.Image, error) {
	const op = "internal.repository.postgres.DeleteReport"

	images, err := r.GetImagesByReportIDs(ctx, tx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sq.Delete("reports").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return nil, fmt.Errorf("%s: %w: report with id %d", op, apperrors.ErrNotFound, id)
	}

	return images[id], nil
}

func (r *ReportRepository) DeleteReportsByOwner(
	ctx context.Context,
	tx *sqlx.Tx,
	ownerID int64,
	statuses []domain.ReportStatus,
) ([]domain.Image, error) {
	const op = "internal.repository.postgres.DeleteReportsByOwner"

	if len(statuses) == 0 {
		return nil, nil
	}

	imagesQuery, imagesArgs, err := r.sq.Select(imageColumns("i")...).
		From("report_images i").
		Join("reports r ON r.id = i.report_id").
		Where(sq.Eq{"r.owner_id": ownerID, "r.status": statuses}).
		OrderBy("i.report_id", "i.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build images query: %w", op, err)
	}

	var images []domain.Image
	if err := tx.SelectContext(ctx, &images, imagesQuery, imagesArgs...); err != nil {
		return nil, fmt.Errorf("%s: failed to select images: %w", op, err)
	}

	deleteQuery, deleteArgs, err := r.sq.Delete("reports").
		Where(sq.Eq{"owner_id": ownerID, "status": statuses}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	if n, err := res.RowsAffected(); err == nil {
		r.log.Debug("deleted owner reports", slog.Int64("owner_id", ownerID), slog.Int64("count", n))
	}

	return images, nil
}
