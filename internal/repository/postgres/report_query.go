package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/identity"
)

var reportSortColumns = map[string]string{
	"":            "r.created_at",
	"created_at":  "r.created_at",
	"updated_at":  "r.updated_at",
	"approved_at": "r.approved_at",
}

func (r *ReportRepository) selectReports() sq.SelectBuilder {
	cols := append(reportColumns("r"), "u.name AS owner_name", "a.username AS reviewer_username")

	return r.sq.Select(cols...).
		From("reports r").
		LeftJoin("users u ON u.id = r.owner_id").
		LeftJoin("admins a ON a.id = r.reviewer_id")
}

func (r *ReportRepository) GetReportByID(ctx context.Context, id int64) (*domain.Report, error) {
	const op = "internal.repository.postgres.GetReportByID"

	query, args, err := r.selectReports().
		Where(sq.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rep domain.Report
	if err := r.db.GetContext(ctx, &rep, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: report with id %d", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get report: %w", op, err)
	}

	reports := []domain.Report{rep}
	if err := r.attachImages(ctx, reports); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &reports[0], nil
}

func reportConditions(f domain.ReportFilter) (sq.And, error) {
	conds := sq.And{}

	if f.Status != nil {
		conds = append(conds, sq.Eq{"r.status": *f.Status})
	}

	if f.IdentityField != nil {
		field, err := identity.ParseField(*f.IdentityField)
		if err != nil {
			return nil, err
		}

		conds = append(conds, sq.NotEq{"r." + field.Column(): nil})
	}

	if f.OwnerID != nil {
		conds = append(conds, sq.Eq{"r.owner_id": *f.OwnerID})
	}

	if f.CreatedFrom != nil {
		conds = append(conds, sq.GtOrEq{"r.created_at": *f.CreatedFrom})
	}

	if f.CreatedTo != nil {
		conds = append(conds, sq.Lt{"r.created_at": *f.CreatedTo})
	}

	return conds, nil
}

func (r *ReportRepository) ListReports(ctx context.Context, f domain.ReportFilter) ([]domain.Report, int, error) {
	const op = "internal.repository.postgres.ListReports"

	conds, err := reportConditions(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	sortColumn, ok := reportSortColumns[f.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("%s: %w: cannot sort by %q", op, apperrors.ErrValidation, f.SortBy)
	}

	page := f.Page.Normalize()

	countBuilder := r.sq.Select("COUNT(*)").From("reports r")
	listBuilder := r.selectReports()

	if len(conds) > 0 {
		countBuilder = countBuilder.Where(conds)
		listBuilder = listBuilder.Where(conds)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count reports: %w", op, err)
	}

	if total == 0 {
		return []domain.Report{}, 0, nil
	}

	query, args, err := listBuilder.
		OrderBy(
			fmt.Sprintf("%s %s NULLS LAST", sortColumn, orderDirection(f.SortOrder != domain.SortAsc)),
			"r.id DESC",
		).
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var reports []domain.Report
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to select reports: %w", op, err)
	}

	if err := r.attachImages(ctx, reports); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return reports, total, nil
}

func (r *ReportRepository) SearchApproved(ctx context.Context, fields identity.FieldSet, query string) ([]domain.Report, error) {
	const op = "internal.repository.postgres.SearchApproved"

	if len(fields) == 0 || query == "" {
		return []domain.Report{}, nil
	}

	pattern := containsPattern(query)

	anyField := sq.Or{}
	for _, f := range fields {
		anyField = append(anyField, sq.ILike{"r." + f.Column(): pattern})
	}

	sqlQuery, args, err := r.selectReports().
		Where(sq.Eq{"r.status": domain.StatusApproved}).
		Where(anyField).
		OrderBy("r.created_at DESC", "r.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var reports []domain.Report
	if err := r.db.SelectContext(ctx, &reports, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute search: %w", op, err)
	}

	if err := r.attachImages(ctx, reports); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reports, nil
}

func (r *ReportRepository) RecentApproved(ctx context.Context, limit int) ([]domain.Report, error) {
	const op = "internal.repository.postgres.RecentApproved"

	query, args, err := r.selectReports().
		Where(sq.Eq{"r.status": domain.StatusApproved}).
		OrderBy("r.approved_at DESC NULLS LAST", "r.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var reports []domain.Report
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select recent reports: %w", op, err)
	}

	if err := r.attachImages(ctx, reports); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reports, nil
}

func (r *ReportRepository) GetReportStats(ctx context.Context, ownerID *int64) (*domain.ReportStats, error) {
	const op = "internal.repository.postgres.GetReportStats"

	builder := r.sq.Select(
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE status = 'PENDING') AS pending",
		"COUNT(*) FILTER (WHERE status = 'APPROVED') AS approved",
		"COUNT(*) FILTER (WHERE status = 'REJECTED') AS rejected",
		"COUNT(*) FILTER (WHERE status = 'APPROVED' AND email IS NOT NULL) AS with_email",
		"COUNT(*) FILTER (WHERE status = 'APPROVED' AND phone IS NOT NULL) AS with_phone",
		"COUNT(*) FILTER (WHERE status = 'APPROVED' AND facebook_id IS NOT NULL) AS with_facebook",
	).From("reports")

	if ownerID != nil {
		builder = builder.Where(sq.Eq{"owner_id": *ownerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var stats domain.ReportStats
	if err := r.db.GetContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &stats, nil
}

func (r *ReportRepository) attachImages(ctx context.Context, reports []domain.Report) error {
	if len(reports) == 0 {
		return nil
	}

	ids := make([]int64, len(reports))
	for i := range reports {
		ids[i] = reports[i].ID
	}

	images, err := r.GetImagesByReportIDs(ctx, r.db, ids)
	if err != nil {
		return err
	}

	for i := range reports {
		reports[i].Images = images[reports[i].ID]
	}

	return nil
}
