package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/repository"
	"github.com/YusovID/fraud-registry/internal/storage"
	"github.com/YusovID/fraud-registry/pkg/api"
	"github.com/YusovID/fraud-registry/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

var errReportLocked = fmt.Errorf("%w: images can only be added to reports under review or rejected", apperrors.ErrConflict)

// ImageUpload is one file received from a client.
type ImageUpload struct {
	Name string
	Data []byte
}

type ReportService interface {
	CreateReport(ctx context.Context, ownerID int64, in domain.NewReport) (*api.Report, error)
	GetOwnReport(ctx context.Context, ownerID, reportID int64) (*api.Report, error)
	ListOwnReports(ctx context.Context, ownerID int64, filter domain.ReportFilter) (*api.ReportList, error)
	GetOwnStats(ctx context.Context, ownerID int64) (*api.ReportStats, error)
	DeleteReport(ctx context.Context, actor domain.Actor, reportID int64) error
	UploadImages(ctx context.Context, ownerID, reportID int64, files []ImageUpload) ([]api.Image, error)
}

type ReportServiceImpl struct {
	BaseService
	reportQuery repository.ReportQueryRepository
	reportCmd   repository.ReportCommandRepository
	images      repository.ImageRepository
	users       repository.UserRepository
	storage     storage.ImageStorage
}

func NewReportService(
	db Transactor,
	log *slog.Logger,
	reportQuery repository.ReportQueryRepository,
	reportCmd repository.ReportCommandRepository,
	images repository.ImageRepository,
	users repository.UserRepository,
	store storage.ImageStorage,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		BaseService: NewBaseService(db, log),
		reportQuery: reportQuery,
		reportCmd:   reportCmd,
		images:      images,
		users:       users,
		storage:     store,
	}
}

func (s *ReportServiceImpl) CreateReport(ctx context.Context, ownerID int64, in domain.NewReport) (*api.Report, error) {
	const op = "internal.service.report.CreateReport"
	log := s.log.With(slog.String("op", op), slog.Int64("owner_id", ownerID))

	owner, err := s.users.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get owner: %w", op, err)
	}

	if owner.Status == domain.UserSuspended {
		return nil, apperrors.ErrAccountSuspended
	}

	rep, err := in.Build(ownerID)
	if err != nil {
		return nil, err
	}

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.reportCmd.CreateReport(ctx, tx, &rep)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reportsSubmitted.Inc()
	log.Info("report submitted", slog.Int64("report_id", rep.ID))

	rep.OwnerName = &owner.Name
	out := toAPIReport(&rep, s.storage)

	return &out, nil
}

func (s *ReportServiceImpl) GetOwnReport(ctx context.Context, ownerID, reportID int64) (*api.Report, error) {
	const op = "internal.service.report.GetOwnReport"

	rep, err := s.reportQuery.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// other users' reports are reported as missing
	if !rep.IsOwnedBy(ownerID) {
		return nil, fmt.Errorf("%s: %w: report with id %d", op, apperrors.ErrNotFound, reportID)
	}

	out := toAPIReport(rep, s.storage)

	return &out, nil
}

func (s *ReportServiceImpl) ListOwnReports(ctx context.Context, ownerID int64, filter domain.ReportFilter) (*api.ReportList, error) {
	const op = "internal.service.report.ListOwnReports"

	filter.OwnerID = &ownerID
	filter.Page = filter.Page.Normalize()

	reports, total, err := s.reportQuery.ListReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.ReportList{
		Reports:    toAPIReports(reports, s.storage),
		Pagination: api.NewPagination(filter.Page.Page, filter.Page.Limit, total),
	}, nil
}

func (s *ReportServiceImpl) GetOwnStats(ctx context.Context, ownerID int64) (*api.ReportStats, error) {
	const op = "internal.service.report.GetOwnStats"

	stats, err := s.reportQuery.GetReportStats(ctx, &ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := toAPIReportStats(stats)

	return &out, nil
}

// DeleteReport removes a pending or rejected report. Users may delete only
// their own reports; administrators may delete any.
func (s *ReportServiceImpl) DeleteReport(ctx context.Context, actor domain.Actor, reportID int64) error {
	const op = "internal.service.report.DeleteReport"
	log := s.log.With(slog.String("op", op), slog.Int64("report_id", reportID), slog.String("actor", string(actor.Kind)))

	var removed []domain.Image

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		rep, err := s.reportCmd.GetReportByIDForUpdate(ctx, tx, reportID)
		if err != nil {
			return err
		}

		if !actor.IsAdmin() && !rep.IsOwnedBy(actor.ID) {
			return apperrors.ErrNotReportOwner
		}

		if err := domain.CanDelete(rep.Status); err != nil {
			return err
		}

		removed, err = s.reportCmd.DeleteReport(ctx, tx, reportID)

		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	removeImages(ctx, log, s.storage, removed)
	log.Info("report deleted", slog.Int("images", len(removed)))

	return nil
}

type preparedImage struct {
	domain.NewImage
	data []byte
}

func prepareImages(files []ImageUpload) ([]preparedImage, error) {
	if len(files) == 0 {
		return nil, apperrors.ErrNoImages
	}

	if len(files) > domain.MaxImagesPerReport {
		return nil, apperrors.ErrImageLimit
	}

	out := make([]preparedImage, 0, len(files))

	for _, f := range files {
		if len(f.Data) > domain.MaxImageSize {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrImageTooLarge, f.Name)
		}

		mimeType, ext, ok := storage.DetectImage(f.Data)
		if len(f.Data) == 0 || !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedImage, f.Name)
		}

		out = append(out, preparedImage{
			NewImage: domain.NewImage{
				Filename:     storage.NewKey(ext),
				OriginalName: f.Name,
				MimeType:     mimeType,
				SizeBytes:    int64(len(f.Data)),
			},
			data: f.Data,
		})
	}

	return out, nil
}

// checkAttach reports whether n more images may be attached to rep, which
// already carries existing ones.
func checkAttach(rep *domain.Report, ownerID int64, existing, n int) error {
	if !rep.IsOwnedBy(ownerID) {
		return apperrors.ErrNotReportOwner
	}

	if !domain.CanAttachImages(rep.Status) {
		return errReportLocked
	}

	if existing+n > domain.MaxImagesPerReport {
		return apperrors.ErrImageLimit
	}

	return nil
}

// UploadImages writes the files to storage before locking the report, so a
// slow bucket never holds the row lock. The checks are repeated under the
// lock and stored files are removed if anything fails.
func (s *ReportServiceImpl) UploadImages(ctx context.Context, ownerID, reportID int64, files []ImageUpload) ([]api.Image, error) {
	const op = "internal.service.report.UploadImages"
	log := s.log.With(slog.String("op", op), slog.Int64("report_id", reportID), slog.Int64("owner_id", ownerID))

	prepared, err := prepareImages(files)
	if err != nil {
		return nil, err
	}

	rep, err := s.reportQuery.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkAttach(rep, ownerID, len(rep.Images), len(prepared)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	uploaded := make([]domain.Image, 0, len(prepared))
	rows := make([]domain.NewImage, 0, len(prepared))

	for _, p := range prepared {
		if err := s.storage.Put(ctx, p.Filename, bytes.NewReader(p.data), p.SizeBytes, p.MimeType); err != nil {
			removeImages(ctx, log, s.storage, uploaded)
			return nil, fmt.Errorf("%s: failed to store %s: %w", op, p.OriginalName, err)
		}

		uploaded = append(uploaded, domain.Image{Filename: p.Filename})
		rows = append(rows, p.NewImage)
	}

	var stored []domain.Image

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		rep, err := s.reportCmd.GetReportByIDForUpdate(ctx, tx, reportID)
		if err != nil {
			return err
		}

		count, err := s.images.CountImages(ctx, tx, reportID)
		if err != nil {
			return err
		}

		if err := checkAttach(rep, ownerID, count, len(rows)); err != nil {
			return err
		}

		stored, err = s.images.AddImages(ctx, tx, reportID, rows)

		return err
	})
	if err != nil {
		log.Warn("rolling back uploaded files", sl.Err(err))
		removeImages(ctx, log, s.storage, uploaded)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	imagesUploaded.Add(float64(len(stored)))
	log.Info("images attached", slog.Int("count", len(stored)))

	return toAPIImages(stored, s.storage), nil
}
