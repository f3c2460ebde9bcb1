package http

import (
	"context"
	"time"

	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/identity"
	"github.com/YusovID/fraud-registry/internal/ratelimit"
	"github.com/YusovID/fraud-registry/internal/service"
	"github.com/YusovID/fraud-registry/pkg/api"
	"github.com/stretchr/testify/mock"
)

type ReportServiceMock struct {
	mock.Mock
}

var _ service.ReportService = (*ReportServiceMock)(nil)

func (m *ReportServiceMock) CreateReport(ctx context.Context, ownerID int64, in domain.NewReport) (*api.Report, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.Report), args.Error(1)
}

func (m *ReportServiceMock) GetOwnReport(ctx context.Context, ownerID, reportID int64) (*api.Report, error) {
	args := m.Called(ctx, ownerID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.Report), args.Error(1)
}

func (m *ReportServiceMock) ListOwnReports(ctx context.Context, ownerID int64, filter domain.ReportFilter) (*api.ReportList, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.ReportList), args.Error(1)
}

func (m *ReportServiceMock) GetOwnStats(ctx context.Context, ownerID int64) (*api.ReportStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.ReportStats), args.Error(1)
}

func (m *ReportServiceMock) DeleteReport(ctx context.Context, actor domain.Actor, reportID int64) error {
	args := m.Called(ctx, actor, reportID)
	return args.Error(0)
}

func (m *ReportServiceMock) UploadImages(ctx context.Context, ownerID, reportID int64, files []service.ImageUpload) ([]api.Image, error) {
	args := m.Called(ctx, ownerID, reportID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]api.Image), args.Error(1)
}

type ModerationServiceMock struct {
	mock.Mock
}

var _ service.ModerationService = (*ModerationServiceMock)(nil)

func (m *ModerationServiceMock) ModerateReport(
	ctx context.Context,
	adminID, reportID int64,
	to domain.ReportStatus,
	reason string,
) (*api.Report, error) {
	args := m.Called(ctx, adminID, reportID, to, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.Report), args.Error(1)
}

func (m *ModerationServiceMock) ResubmitReport(ctx context.Context, ownerID, reportID int64, to domain.ReportStatus) (*api.Report, error) {
	args := m.Called(ctx, ownerID, reportID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.Report), args.Error(1)
}

func (m *ModerationServiceMock) ListReports(ctx context.Context, filter domain.ReportFilter) (*api.ReportList, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.ReportList), args.Error(1)
}

func (m *ModerationServiceMock) GetReport(ctx context.Context, reportID int64) (*api.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.Report), args.Error(1)
}

func (m *ModerationServiceMock) Dashboard(ctx context.Context) (*api.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.Dashboard), args.Error(1)
}

type SearchServiceMock struct {
	mock.Mock
}

var _ service.SearchService = (*SearchServiceMock)(nil)

func (m *SearchServiceMock) Search(ctx context.Context, query string, requested identity.FieldSet) (*api.SearchResult, error) {
	args := m.Called(ctx, query, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.SearchResult), args.Error(1)
}

func (m *SearchServiceMock) GetPublicReport(ctx context.Context, reportID int64) (*api.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.Report), args.Error(1)
}

func (m *SearchServiceMock) Recent(ctx context.Context, limit int) ([]api.Report, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]api.Report), args.Error(1)
}

func (m *SearchServiceMock) SiteStats(ctx context.Context) (*api.SiteStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.SiteStats), args.Error(1)
}

type UserServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*UserServiceMock)(nil)

func (m *UserServiceMock) GetProfile(ctx context.Context, userID int64) (*api.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.User), args.Error(1)
}

func (m *UserServiceMock) UpdateProfile(ctx context.Context, userID int64, name string, avatarURL *string) (*api.User, error) {
	args := m.Called(ctx, userID, name, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.User), args.Error(1)
}

func (m *UserServiceMock) ListUsers(ctx context.Context, filter domain.UserFilter) (*api.UserList, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.UserList), args.Error(1)
}

func (m *UserServiceMock) GetUserStats(ctx context.Context) (*api.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.UserStats), args.Error(1)
}

func (m *UserServiceMock) GetUserActivity(ctx context.Context, userID int64) (*api.UserActivity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.UserActivity), args.Error(1)
}

func (m *UserServiceMock) SetUserStatus(ctx context.Context, userID int64, status domain.UserStatus) (*api.User, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.User), args.Error(1)
}

func (m *UserServiceMock) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type AuthServiceMock struct {
	mock.Mock
}

var _ service.AuthService = (*AuthServiceMock)(nil)

func (m *AuthServiceMock) GoogleLogin(ctx context.Context, idToken string) (*api.AuthResponse, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *AuthServiceMock) AdminLogin(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *AuthServiceMock) Refresh(ctx context.Context, p auth.Principal) (*api.AuthResponse, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

type LimiterMock struct {
	mock.Mock
}

var _ ratelimit.Limiter = (*LimiterMock)(nil)

func (m *LimiterMock) Allow(ctx context.Context, key string, limit int, window time.Duration) (ratelimit.Decision, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Get(0).(ratelimit.Decision), args.Error(1)
}
