package http

import (
	"net/http"

	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/pkg/api"
)

func (s *Server) googleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.googleLogin"

	var req api.GoogleLoginRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	resp, err := s.auth.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, resp)
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminLogin"

	var req api.AdminLoginRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	resp, err := s.auth.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, resp)
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.refreshToken"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	resp, err := s.auth.Refresh(r.Context(), *p)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, resp)
}

// logout only acknowledges; tokens are stateless and expire on their own.
func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	s.respondOK(w, http.StatusOK, api.Message{Message: "logged out"})
}
