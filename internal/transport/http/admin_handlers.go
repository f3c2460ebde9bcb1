package http

import (
	"net/http"

	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/pkg/api"
)

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getDashboard"

	dash, err := s.moderation.Dashboard(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, dash)
}

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listReports"

	filter, err := parseReportFilter(r.URL.Query())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.writeReportList(w, r, op, filter)
}

func (s *Server) listPendingReports(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listPendingReports"

	filter, err := parseReportFilter(r.URL.Query())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	pending := domain.StatusPending
	filter.Status = &pending

	// oldest first so the queue is worked in submission order
	if r.URL.Query().Get("sortOrder") == "" {
		filter.SortOrder = domain.SortAsc
	}

	s.writeReportList(w, r, op, filter)
}

func (s *Server) writeReportList(w http.ResponseWriter, r *http.Request, op string, filter domain.ReportFilter) {
	list, err := s.moderation.ListReports(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, list)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getReport"

	id, err := pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	report, err := s.moderation.GetReport(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, report)
}

func (s *Server) deleteReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteReport"

	s.deleteReportAs(w, r, op)
}

func (s *Server) moderateReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.moderateReport"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req api.UpdateReportStatusRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	report, err := s.moderation.ModerateReport(r.Context(), p.ID, id, domain.ReportStatus(req.Status), req.RejectionReason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, report)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listUsers"

	filter, err := parseUserFilter(r.URL.Query())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	list, err := s.users.ListUsers(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, list)
}

func (s *Server) getUserStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUserStats"

	stats, err := s.users.GetUserStats(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, stats)
}

func (s *Server) getUserActivity(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUserActivity"

	id, err := pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	activity, err := s.users.GetUserActivity(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, activity)
}

func (s *Server) setUserStatus(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.setUserStatus"

	id, err := pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req api.UpdateUserStatusRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.users.SetUserStatus(r.Context(), id, domain.UserStatus(req.Status))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteUser"

	id, err := pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.users.DeleteUser(r.Context(), id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, api.Message{Message: "user deleted"})
}
