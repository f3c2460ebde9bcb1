package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/repository"
	"github.com/YusovID/fraud-registry/pkg/api"
	"github.com/jmoiron/sqlx"
)

const dashboardRecentReports = 5

type ModerationService interface {
	ModerateReport(ctx context.Context, adminID, reportID int64, to domain.ReportStatus, reason string) (*api.Report, error)
	ResubmitReport(ctx context.Context, ownerID, reportID int64, to domain.ReportStatus) (*api.Report, error)
	ListReports(ctx context.Context, filter domain.ReportFilter) (*api.ReportList, error)
	GetReport(ctx context.Context, reportID int64) (*api.Report, error)
	Dashboard(ctx context.Context) (*api.Dashboard, error)
}

type ModerationServiceImpl struct {
	BaseService
	reportQuery repository.ReportQueryRepository
	reportCmd   repository.ReportCommandRepository
	users       repository.UserRepository
	urls        urlBuilder
}

func NewModerationService(
	db Transactor,
	log *slog.Logger,
	reportQuery repository.ReportQueryRepository,
	reportCmd repository.ReportCommandRepository,
	users repository.UserRepository,
	urls urlBuilder,
) *ModerationServiceImpl {
	return &ModerationServiceImpl{
		BaseService: NewBaseService(db, log),
		reportQuery: reportQuery,
		reportCmd:   reportCmd,
		users:       users,
		urls:        urls,
	}
}

func (s *ModerationServiceImpl) ModerateReport(ctx context.Context, adminID, reportID int64, to domain.ReportStatus, reason string) (*api.Report, error) {
	const op = "internal.service.moderation.ModerateReport"

	return s.transition(ctx, op, domain.AdminActor(adminID), reportID, to, reason)
}

// ResubmitReport lets an owner send a rejected report back to review.
func (s *ModerationServiceImpl) ResubmitReport(ctx context.Context, ownerID, reportID int64, to domain.ReportStatus) (*api.Report, error) {
	const op = "internal.service.moderation.ResubmitReport"

	return s.transition(ctx, op, domain.UserActor(ownerID), reportID, to, "")
}

func (s *ModerationServiceImpl) transition(
	ctx context.Context,
	op string,
	actor domain.Actor,
	reportID int64,
	to domain.ReportStatus,
	reason string,
) (*api.Report, error) {
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("report_id", reportID),
		slog.String("actor", string(actor.Kind)),
		slog.Int64("actor_id", actor.ID),
	)

	var from domain.ReportStatus

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		current, err := s.reportCmd.GetReportByIDForUpdate(ctx, tx, reportID)
		if err != nil {
			return err
		}

		next, err := domain.Transition(*current, actor, to, reason, s.now())
		if err != nil {
			return err
		}

		from = current.Status

		return s.reportCmd.UpdateReportStatus(ctx, tx, reportID, current.Status, next.StatusUpdate())
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reportTransitions.WithLabelValues(string(from), string(to), string(actor.Kind)).Inc()
	log.Info("report status changed", slog.String("from", string(from)), slog.String("to", string(to)))

	rep, err := s.reportQuery.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to reload report: %w", op, err)
	}

	out := toAPIReport(rep, s.urls)

	return &out, nil
}

func (s *ModerationServiceImpl) ListReports(ctx context.Context, filter domain.ReportFilter) (*api.ReportList, error) {
	const op = "internal.service.moderation.ListReports"

	filter.Page = filter.Page.Normalize()

	reports, total, err := s.reportQuery.ListReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.ReportList{
		Reports:    toAPIReports(reports, s.urls),
		Pagination: api.NewPagination(filter.Page.Page, filter.Page.Limit, total),
	}, nil
}

func (s *ModerationServiceImpl) GetReport(ctx context.Context, reportID int64) (*api.Report, error) {
	const op = "internal.service.moderation.GetReport"

	rep, err := s.reportQuery.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := toAPIReport(rep, s.urls)

	return &out, nil
}

func (s *ModerationServiceImpl) Dashboard(ctx context.Context) (*api.Dashboard, error) {
	const op = "internal.service.moderation.Dashboard"

	reportStats, err := s.reportQuery.GetReportStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userStats, err := s.users.GetUserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recent, _, err := s.reportQuery.ListReports(ctx, domain.ReportFilter{
		SortOrder: domain.SortDesc,
		Page:      domain.Page{Page: 1, Limit: dashboardRecentReports},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.Dashboard{
		Overview: api.DashboardOverview{
			TotalUsers:      userStats.Total,
			TotalReports:    reportStats.Total,
			PendingReports:  reportStats.Pending,
			ApprovedReports: reportStats.Approved,
			RejectedReports: reportStats.Rejected,
		},
		RecentReports: toAPIReports(recent, s.urls),
	}, nil
}
