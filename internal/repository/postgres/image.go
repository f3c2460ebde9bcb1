package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/jmoiron/sqlx"
)

func imageColumns(alias string) []string {
	cols := []string{"id", "report_id", "filename", "original_name", "mime_type", "size_bytes", "position", "created_at"}

	if alias == "" {
		return cols
	}

	for i, c := range cols {
		cols[i] = alias + "." + c
	}

	return cols
}

func (r *ReportRepository) CountImages(ctx context.Context, ext sqlx.ExtContext, reportID int64) (int, error) {
	const op = "internal.repository.postgres.CountImages"

	query, args, err := r.sq.Select("COUNT(*)").
		From("report_images").
		Where(sq.Eq{"report_id": reportID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var count int
	if err := sqlx.GetContext(ctx, ext, &count, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to count images: %w", op, err)
	}

	return count, nil
}

func (r *ReportRepository) AddImages(ctx context.Context, tx *sqlx.Tx, reportID int64, images []domain.NewImage) ([]domain.Image, error) {
	const op = "internal.repository.postgres.AddImages"

	if len(images) == 0 {
		return []domain.Image{}, nil
	}

	posQuery, posArgs, err := r.sq.Select("COALESCE(MAX(position), 0)").
		From("report_images").
		Where(sq.Eq{"report_id": reportID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build position query: %w", op, err)
	}

	var lastPosition int
	if err := tx.GetContext(ctx, &lastPosition, posQuery, posArgs...); err != nil {
		return nil, fmt.Errorf("%s: failed to get last position: %w", op, err)
	}

	insertBuilder := r.sq.Insert("report_images").
		Columns("report_id", "filename", "original_name", "mime_type", "size_bytes", "position")

	for i, img := range images {
		insertBuilder = insertBuilder.Values(
			reportID, img.Filename, img.OriginalName, img.MimeType, img.SizeBytes, lastPosition+i+1,
		)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING " + joinColumns(imageColumns(""))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var inserted []domain.Image
	if err := tx.SelectContext(ctx, &inserted, query, args...); err != nil {
		switch pgErrorCode(err) {
		case codeForeignKeyViolation:
			return nil, fmt.Errorf("%s: %w: report with id %d", op, apperrors.ErrNotFound, reportID)
		case codeUniqueViolation:
			return nil, fmt.Errorf("%s: %w: image filename", op, apperrors.ErrAlreadyExists)
		case codeCheckViolation:
			return nil, fmt.Errorf("%s: %w: %w", op, apperrors.ErrValidation, err)
		}

		return nil, fmt.Errorf("%s: failed to insert images: %w", op, err)
	}

	return inserted, nil
}

func (r *ReportRepository) GetImagesByReportIDs(ctx context.Context, ext sqlx.ExtContext, reportIDs []int64) (map[int64][]domain.Image, error) {
	const op = "internal.repository.postgres.GetImagesByReportIDs"

	result := make(map[int64][]domain.Image, len(reportIDs))
	if len(reportIDs) == 0 {
		return result, nil
	}

	query, args, err := r.sq.Select(imageColumns("")...).
		From("report_images").
		Where(sq.Eq{"report_id": reportIDs}).
		OrderBy("report_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var images []domain.Image
	if err := sqlx.SelectContext(ctx, ext, &images, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select images: %w", op, err)
	}

	for _, img := range images {
		result[img.ReportID] = append(result[img.ReportID], img)
	}

	return result, nil
}
