package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/identity"
	"github.com/YusovID/fraud-registry/internal/repository"
	"github.com/YusovID/fraud-registry/pkg/api"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

type SearchService interface {
	// Search looks the query up in approved reports. A non-empty requested
	// set narrows the classified fields.
	Search(ctx context.Context, query string, requested identity.FieldSet) (*api.SearchResult, error)
	GetPublicReport(ctx context.Context, reportID int64) (*api.Report, error)
	Recent(ctx context.Context, limit int) ([]api.Report, error)
	SiteStats(ctx context.Context) (*api.SiteStats, error)
}

type SearchServiceImpl struct {
	log     *slog.Logger
	reports repository.ReportQueryRepository
	urls    urlBuilder
}

func NewSearchService(log *slog.Logger, reports repository.ReportQueryRepository, urls urlBuilder) *SearchServiceImpl {
	return &SearchServiceImpl{log: log, reports: reports, urls: urls}
}

func (s *SearchServiceImpl) Search(ctx context.Context, query string, requested identity.FieldSet) (*api.SearchResult, error) {
	const op = "internal.service.search.Search"

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.ErrEmptyQuery
	}

	fields := identity.Classify(query)
	if len(requested) > 0 {
		fields = fields.Intersect(requested)
	}

	result := &api.SearchResult{
		Query:   query,
		Fields:  fields.Names(),
		Reports: []api.SearchHit{},
	}

	countSearch(result.Fields)

	if len(fields) == 0 {
		return result, nil
	}

	reports, err := s.reports.SearchApproved(ctx, fields, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range reports {
		r := &reports[i]
		if r.Status != domain.StatusApproved || !identity.Matches(r, fields, query) {
			continue
		}

		result.Reports = append(result.Reports, api.SearchHit{
			Report:          toPublicReport(r, s.urls),
			MatchedOn:       identity.MatchedOn(r, fields, query).Names(),
			IdentitySummary: identity.Summary(r, identity.All),
		})
	}

	result.Count = len(result.Reports)

	s.log.Debug("search done",
		slog.String("op", op),
		slog.Any("fields", result.Fields),
		slog.Int("results", result.Count),
	)

	return result, nil
}

func countSearch(fields []string) {
	if len(fields) == 0 {
		searches.WithLabelValues("none").Inc()
		return
	}

	for _, f := range fields {
		searches.WithLabelValues(f).Inc()
	}
}

// GetPublicReport hides every report that is not approved.
func (s *SearchServiceImpl) GetPublicReport(ctx context.Context, reportID int64) (*api.Report, error) {
	const op = "internal.service.search.GetPublicReport"

	rep, err := s.reports.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if rep.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%s: %w: report with id %d", op, apperrors.ErrNotFound, reportID)
	}

	out := toPublicReport(rep, s.urls)

	return &out, nil
}

func (s *SearchServiceImpl) Recent(ctx context.Context, limit int) ([]api.Report, error) {
	const op = "internal.service.search.Recent"

	switch {
	case limit < 1:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}

	reports, err := s.reports.RecentApproved(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]api.Report, 0, len(reports))
	for i := range reports {
		out = append(out, toPublicReport(&reports[i], s.urls))
	}

	return out, nil
}

func (s *SearchServiceImpl) SiteStats(ctx context.Context) (*api.SiteStats, error) {
	const op = "internal.service.search.SiteStats"

	stats, err := s.reports.GetReportStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.SiteStats{
		TotalReports:     stats.Approved,
		Emails:           stats.WithEmail,
		Phones:           stats.WithPhone,
		FacebookProfiles: stats.WithFacebook,
	}, nil
}
