// Package repository defines the persistence contracts used by the service layer.
package repository

import (
	"context"
	"time"

	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/identity"
	"github.com/jmoiron/sqlx"
)

// ReportQueryRepository holds read-only report queries run outside transactions.
type ReportQueryRepository interface {
	// GetReportByID returns the report with its images and reviewer username.
	// It returns apperrors.ErrNotFound if the report does not exist.
	GetReportByID(ctx context.Context, id int64) (*domain.Report, error)

	// ListReports returns one page of reports matching the filter and the
	// total number of matches.
	ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, int, error)

	// SearchApproved returns APPROVED reports where any of fields contains query,
	// case-insensitively, newest first, with images.
	SearchApproved(ctx context.Context, fields identity.FieldSet, query string) ([]domain.Report, error)

	RecentApproved(ctx context.Context, limit int) ([]domain.Report, error)

	// GetReportStats counts reports per status, for a single owner when ownerID is set.
	GetReportStats(ctx context.Context, ownerID *int64) (*domain.ReportStats, error)
}

// ReportCommandRepository holds writes and row locks. Methods taking a tx
// must run inside a transaction.
type ReportCommandRepository interface {
	// CreateReport inserts r and fills its ID and timestamps.
	// It returns apperrors.ErrNotFound if the owner does not exist.
	CreateReport(ctx context.Context, ext sqlx.ExtContext, r *domain.Report) error

	// GetReportByIDForUpdate loads the report without images and locks its row.
	// It returns apperrors.ErrNotFound if the report does not exist.
	GetReportByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Report, error)

	// UpdateReportStatus writes a transition only if the stored status still
	// equals expected. A lost race returns apperrors.ErrStatusChanged.
	UpdateReportStatus(ctx context.Context, tx *sqlx.Tx, id int64, expected domain.ReportStatus, upd domain.StatusUpdate) error

	// DeleteReport removes the report and its image rows and returns the
	// removed images so their files can be cleaned up.
	DeleteReport(ctx context.Context, tx *sqlx.Tx, id int64) ([]domain.Image, error)

	// DeleteReportsByOwner removes the owner's reports in the given statuses
	// and returns their images.
	DeleteReportsByOwner(ctx context.Context, tx *sqlx.Tx, ownerID int64, statuses []domain.ReportStatus) ([]domain.Image, error)
}

type ImageRepository interface {
	// AddImages appends images to a report, numbering positions after the existing ones.
	AddImages(ctx context.Context, tx *sqlx.Tx, reportID int64, images []domain.NewImage) ([]domain.Image, error)

	CountImages(ctx context.Context, ext sqlx.ExtContext, reportID int64) (int, error)

	// GetImagesByReportIDs returns images grouped by report id, ordered by position.
	GetImagesByReportIDs(ctx context.Context, ext sqlx.ExtContext, reportIDs []int64) (map[int64][]domain.Image, error)
}

type UserRepository interface {
	// UpsertGoogleUser creates the user on first sign-in and records the login
	// time on later ones. It returns apperrors.ErrAlreadyExists if the email
	// belongs to a different Google account.
	UpsertGoogleUser(ctx context.Context, profile domain.GoogleProfile, now time.Time) (*domain.User, error)

	// GetUserByID returns apperrors.ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)

	UpdateProfile(ctx context.Context, id int64, name string, avatarURL *string) (*domain.User, error)

	ListUsers(ctx context.Context, filter domain.UserFilter) ([]domain.UserWithCounts, int, error)

	SetUserStatus(ctx context.Context, id int64, status domain.UserStatus) (*domain.User, error)

	// DeleteUser returns apperrors.ErrNotFound if the user does not exist.
	// Reports still owned by the user keep existing with a NULL owner.
	DeleteUser(ctx context.Context, tx *sqlx.Tx, id int64) error

	GetUserStats(ctx context.Context) (*domain.UserStats, error)
}

type AdminRepository interface {
	// GetAdminByUsername returns apperrors.ErrNotFound if no such admin exists.
	GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)

	GetAdminByID(ctx context.Context, id int64) (*domain.Admin, error)

	// CreateAdmin returns apperrors.ErrAlreadyExists for a taken username.
	CreateAdmin(ctx context.Context, admin *domain.Admin) error

	TouchAdminLogin(ctx context.Context, id int64, at time.Time) error
}
