package service

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/identity"
	"github.com/YusovID/fraud-registry/internal/repository"
	"github.com/YusovID/fraud-registry/internal/storage"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type ReportQueryRepositoryMock struct {
	mock.Mock
}

var _ repository.ReportQueryRepository = (*ReportQueryRepositoryMock)(nil)

func (m *ReportQueryRepositoryMock) GetReportByID(ctx context.Context, id int64) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportQueryRepositoryMock) ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.Report), args.Int(1), args.Error(2)
}

func (m *ReportQueryRepositoryMock) SearchApproved(ctx context.Context, fields identity.FieldSet, query string) ([]domain.Report, error) {
	args := m.Called(ctx, fields, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *ReportQueryRepositoryMock) RecentApproved(ctx context.Context, limit int) ([]domain.Report, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *ReportQueryRepositoryMock) GetReportStats(ctx context.Context, ownerID *int64) (*domain.ReportStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ReportStats), args.Error(1)
}

type ReportCommandRepositoryMock struct {
	mock.Mock
}

var _ repository.ReportCommandRepository = (*ReportCommandRepositoryMock)(nil)

func (m *ReportCommandRepositoryMock) CreateReport(ctx context.Context, ext sqlx.ExtContext, r *domain.Report) error {
	args := m.Called(ctx, ext, r)
	return args.Error(0)
}

func (m *ReportCommandRepositoryMock) GetReportByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Report, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportCommandRepositoryMock) UpdateReportStatus(
	ctx context.Context,
	tx *sqlx.Tx,
	id int64,
	expected domain.ReportStatus,
	upd domain.StatusUpdate,
) error {
	args := m.Called(ctx, tx, id, expected, upd)
	return args.Error(0)
}

func (m *ReportCommandRepositoryMock) DeleteReport(ctx context.Context, tx *sqlx.Tx, id int64) ([]domain.Image, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *ReportCommandRepositoryMock) DeleteReportsByOwner(
	ctx context.Context,
	tx *sqlx.Tx,
	ownerID int64,
	statuses []domain.ReportStatus,
) ([]domain.Image, error) {
	args := m.Called(ctx, tx, ownerID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Image), args.Error(1)
}

type ImageRepositoryMock struct {
	mock.Mock
}

var _ repository.ImageRepository = (*ImageRepositoryMock)(nil)

func (m *ImageRepositoryMock) AddImages(ctx context.Context, tx *sqlx.Tx, reportID int64, images []domain.NewImage) ([]domain.Image, error) {
	args := m.Called(ctx, tx, reportID, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *ImageRepositoryMock) CountImages(ctx context.Context, ext sqlx.ExtContext, reportID int64) (int, error) {
	args := m.Called(ctx, ext, reportID)
	return args.Int(0), args.Error(1)
}

func (m *ImageRepositoryMock) GetImagesByReportIDs(ctx context.Context, ext sqlx.ExtContext, reportIDs []int64) (map[int64][]domain.Image, error) {
	args := m.Called(ctx, ext, reportIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[int64][]domain.Image), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) UpsertGoogleUser(ctx context.Context, profile domain.GoogleProfile, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, profile, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) UpdateProfile(ctx context.Context, id int64, name string, avatarURL *string) (*domain.User, error) {
	args := m.Called(ctx, id, name, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context, filter domain.UserFilter) ([]domain.UserWithCounts, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.UserWithCounts), args.Int(1), args.Error(2)
}

func (m *UserRepositoryMock) SetUserStatus(ctx context.Context, id int64, status domain.UserStatus) (*domain.User, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) DeleteUser(ctx context.Context, tx *sqlx.Tx, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUserStats(ctx context.Context) (*domain.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.UserStats), args.Error(1)
}

type AdminRepositoryMock struct {
	mock.Mock
}

var _ repository.AdminRepository = (*AdminRepositoryMock)(nil)

func (m *AdminRepositoryMock) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *AdminRepositoryMock) GetAdminByID(ctx context.Context, id int64) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *AdminRepositoryMock) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *AdminRepositoryMock) TouchAdminLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type StorageMock struct {
	mock.Mock
}

var _ storage.ImageStorage = (*StorageMock)(nil)

func (m *StorageMock) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *StorageMock) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *StorageMock) URL(key string) string {
	return "https://cdn.test/" + key
}

type TokenIssuerMock struct {
	mock.Mock
}

func (m *TokenIssuerMock) Issue(p auth.Principal) (string, time.Time, error) {
	args := m.Called(p)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type IdentityVerifierMock struct {
	mock.Mock
}

func (m *IdentityVerifierMock) Verify(ctx context.Context, idToken string) (*domain.GoogleProfile, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.GoogleProfile), args.Error(1)
}
