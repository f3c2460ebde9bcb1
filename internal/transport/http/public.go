package http

import (
	"net/http"
	"strings"

	"github.com/YusovID/fraud-registry/internal/identity"
)

func (s *Server) searchReports(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.searchReports"

	q := r.URL.Query()

	query := q.Get("query")
	if query == "" {
		query = q.Get("q")
	}

	var requested identity.FieldSet

	if raw := strings.TrimSpace(q.Get("fields")); raw != "" {
		fields, err := identity.ParseFields(raw)
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		requested = fields
	}

	result, err := s.search.Search(r.Context(), query, requested)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, result)
}

func (s *Server) getPublicReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getPublicReport"

	id, err := pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	report, err := s.search.GetPublicReport(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, report)
}

func (s *Server) getSiteStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getSiteStats"

	stats, err := s.search.SiteStats(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, stats)
}

func (s *Server) getRecentReports(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getRecentReports"

	limit, err := queryInt(r.URL.Query(), "limit")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	reports, err := s.search.Recent(r.Context(), limit)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, reports)
}
