package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/repository"
	"github.com/YusovID/fraud-registry/internal/storage"
	"github.com/YusovID/fraud-registry/pkg/api"
	"github.com/jmoiron/sqlx"
)

const activityRecentReports = 10

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*api.User, error)
	UpdateProfile(ctx context.Context, userID int64, name string, avatarURL *string) (*api.User, error)
	ListUsers(ctx context.Context, filter domain.UserFilter) (*api.UserList, error)
	GetUserStats(ctx context.Context) (*api.UserStats, error)
	GetUserActivity(ctx context.Context, userID int64) (*api.UserActivity, error)
	SetUserStatus(ctx context.Context, userID int64, status domain.UserStatus) (*api.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type UserServiceImpl struct {
	BaseService
	users       repository.UserRepository
	reportQuery repository.ReportQueryRepository
	reportCmd   repository.ReportCommandRepository
	storage     storage.ImageStorage
}

func NewUserService(
	db Transactor,
	log *slog.Logger,
	users repository.UserRepository,
	reportQuery repository.ReportQueryRepository,
	reportCmd repository.ReportCommandRepository,
	store storage.ImageStorage,
) *UserServiceImpl {
	return &UserServiceImpl{
		BaseService: NewBaseService(db, log),
		users:       users,
		reportQuery: reportQuery,
		reportCmd:   reportCmd,
		storage:     store,
	}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID int64) (*api.User, error) {
	const op = "internal.service.user.GetProfile"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := toAPIUser(user)

	return &out, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID int64, name string, avatarURL *string) (*api.User, error) {
	const op = "internal.service.user.UpdateProfile"

	if avatarURL != nil && strings.TrimSpace(*avatarURL) == "" {
		avatarURL = nil
	}

	user, err := s.users.UpdateProfile(ctx, userID, strings.TrimSpace(name), avatarURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := toAPIUser(user)

	return &out, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, filter domain.UserFilter) (*api.UserList, error) {
	const op = "internal.service.user.ListUsers"

	filter.Page = filter.Page.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)

	users, total, err := s.users.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]api.User, 0, len(users))

	for i := range users {
		u := toAPIUser(&users[i].User)
		u.Count = &api.UserCounts{
			FraudReports:    users[i].TotalReports,
			ApprovedReports: users[i].ApprovedReports,
		}

		out = append(out, u)
	}

	return &api.UserList{
		Users:      out,
		Pagination: api.NewPagination(filter.Page.Page, filter.Page.Limit, total),
	}, nil
}

func (s *UserServiceImpl) GetUserStats(ctx context.Context) (*api.UserStats, error) {
	const op = "internal.service.user.GetUserStats"

	stats, err := s.users.GetUserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.UserStats{
		Total:        stats.Total,
		Active:       stats.Active,
		Suspended:    stats.Suspended,
		NewLastMonth: stats.NewLastMonth,
	}, nil
}

func (s *UserServiceImpl) GetUserActivity(ctx context.Context, userID int64) (*api.UserActivity, error) {
	const op = "internal.service.user.GetUserActivity"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats, err := s.reportQuery.GetReportStats(ctx, &userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recent, _, err := s.reportQuery.ListReports(ctx, domain.ReportFilter{
		OwnerID:   &userID,
		SortOrder: domain.SortDesc,
		Page:      domain.Page{Page: 1, Limit: activityRecentReports},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.UserActivity{
		User:          toAPIUser(user),
		Stats:         toAPIReportStats(stats),
		RecentReports: toAPIReports(recent, s.storage),
	}, nil
}

func (s *UserServiceImpl) SetUserStatus(ctx context.Context, userID int64, status domain.UserStatus) (*api.User, error) {
	const op = "internal.service.user.SetUserStatus"

	user, err := s.users.SetUserStatus(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user status changed",
		slog.String("op", op),
		slog.Int64("user_id", userID),
		slog.String("status", string(status)),
	)

	out := toAPIUser(user)

	return &out, nil
}

// DeleteUser removes the account together with its unpublished reports.
// Approved reports stay public without an owner.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	const op = "internal.service.user.DeleteUser"
	log := s.log.With(slog.String("op", op), slog.Int64("user_id", userID))

	var removed []domain.Image

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		removed, err = s.reportCmd.DeleteReportsByOwner(ctx, tx, userID,
			[]domain.ReportStatus{domain.StatusPending, domain.StatusRejected})
		if err != nil {
			return err
		}

		return s.users.DeleteUser(ctx, tx, userID)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	removeImages(ctx, log, s.storage, removed)
	log.Info("user deleted", slog.Int("images", len(removed)))

	return nil
}
