// Package http exposes the registry over a JSON REST API. Handlers decode
// requests, call the service layer and wrap results in the response envelope.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/config"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/ratelimit"
	"github.com/YusovID/fraud-registry/internal/service"
	"github.com/YusovID/fraud-registry/internal/validation"
	"github.com/YusovID/fraud-registry/pkg/api"
	"github.com/YusovID/fraud-registry/pkg/logger/sl"
	"github.com/YusovID/fraud-registry/swagger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxJSONBody = 1 << 20

type TokenParser interface {
	Parse(token string) (*auth.Principal, error)
}

// Deps are the services the handlers call.
type Deps struct {
	Reports    service.ReportService
	Moderation service.ModerationService
	Search     service.SearchService
	Users      service.UserService
	Auth       service.AuthService
	Tokens     TokenParser
	Limiter    ratelimit.Limiter
}

type Options struct {
	CORSOrigins []string
	Limits      config.RateLimit
	// UploadsDir is served under /uploads/images when set.
	UploadsDir string
}

type Server struct {
	log  *slog.Logger
	opts Options

	reports    service.ReportService
	moderation service.ModerationService
	search     service.SearchService
	users      service.UserService
	auth       service.AuthService
	tokens     TokenParser
	limiter    ratelimit.Limiter
}

func NewServer(log *slog.Logger, opts Options, deps Deps) *Server {
	return &Server{
		log:        log,
		opts:       opts,
		reports:    deps.Reports,
		moderation: deps.Moderation,
		search:     deps.Search,
		users:      deps.Users,
		auth:       deps.Auth,
		tokens:     deps.Tokens,
		limiter:    deps.Limiter,
	}
}

// Routes builds the router with middleware and every API endpoint.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RealIP)
	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)
	mux.Use(middleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.respondError(w, http.StatusNotFound, "route not found")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.respondOK(w, http.StatusOK, api.Message{Message: "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	if docs, err := swagger.GetHandler(); err != nil {
		s.log.Error("failed to load api docs", sl.Err(err))
	} else {
		mux.Handle("/swagger/*", http.StripPrefix("/swagger/", docs))
	}

	if s.opts.UploadsDir != "" {
		mux.Handle("/uploads/images/*", s.serveUploads(s.opts.UploadsDir))
	}

	limits := s.opts.Limits

	mux.Route("/api", func(r chi.Router) {
		r.With(s.rateLimit("search", limits.Search)).Get("/search", s.searchReports)
		r.Get("/report/{id}", s.getPublicReport)
		r.Get("/stats", s.getSiteStats)
		r.Get("/recent", s.getRecentReports)

		r.Route("/auth", func(r chi.Router) {
			r.With(s.rateLimit("login", limits.Login)).Post("/google", s.googleLogin)
			r.With(s.rateLimit("login", limits.Login)).Post("/admin/login", s.adminLogin)
			r.With(s.authenticate).Post("/refresh", s.refreshToken)
			r.Post("/logout", s.logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate, s.requireKind(domain.ActorUser))

			r.Get("/user/profile", s.getProfile)
			r.Put("/user/profile", s.updateProfile)
			r.Get("/user/stats", s.getOwnStats)

			r.With(s.rateLimit("submit", limits.Submit)).Post("/user/reports", s.createReport)
			r.Post("/user/reports/upload", s.uploadImages)
			r.Get("/user/reports", s.listOwnReports)
			r.Get("/user/reports/{id}", s.getOwnReport)
			r.Delete("/user/reports/{id}", s.deleteOwnReport)

			r.Put("/fraud/reports/{id}/status", s.resubmitReport)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authenticate, s.requireKind(domain.ActorAdmin))

			r.Get("/dashboard", s.getDashboard)

			r.Get("/reports", s.listReports)
			r.Get("/reports/pending", s.listPendingReports)
			r.Get("/reports/{id}", s.getReport)
			r.Delete("/reports/{id}", s.deleteReport)
			r.Put("/reports/{id}/status", s.moderateReport)

			r.Get("/users", s.listUsers)
			r.Get("/users/stats", s.getUserStats)
			r.Get("/users/{id}/activity", s.getUserActivity)
			r.Put("/users/{id}/status", s.setUserStatus)
			r.Delete("/users/{id}", s.deleteUser)
		})
	})

	return mux
}

// serveUploads serves stored images without directory listings.
func (s *Server) serveUploads(dir string) http.Handler {
	files := http.StripPrefix("/uploads/images/", http.FileServer(http.Dir(dir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			s.respondError(w, http.StatusNotFound, "image not found")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		files.ServeHTTP(w, r)
	})
}

func (s *Server) respond(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

func (s *Server) respondOK(w http.ResponseWriter, code int, data any) {
	s.respond(w, code, api.Envelope{Success: true, Data: data})
}

func (s *Server) respondError(w http.ResponseWriter, code int, message string, details ...string) {
	s.respond(w, code, api.Envelope{Success: false, Error: message, Details: details})
}

// decodeAndValidate reads a JSON body into v and runs struct validation.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) error {
	if err := s.decode(http.MaxBytesReader(w, r.Body, maxJSONBody), v); err != nil {
		return err
	}

	return validation.ValidateStruct(v)
}

func (s *Server) decode(body io.ReadCloser, v any) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError logs err and maps it to a status code and a message
// that carries no internal detail.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", getRequestID(r.Context())))

	var validationErr *validation.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Info("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, apperrors.ErrValidation.Error(), validationErr.Errors...)
	case errors.Is(err, apperrors.ErrInvalidRequest):
		log.Info("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error())
	case errors.Is(err, apperrors.ErrValidation):
		log.Info("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, publicMessage(err, apperrors.ErrValidation))
	case errors.Is(err, apperrors.ErrUnauthorized):
		log.Info("request unauthorized", sl.Err(err))
		s.respondError(w, http.StatusUnauthorized, publicMessage(err, apperrors.ErrUnauthorized))
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("request forbidden", sl.Err(err))
		s.respondError(w, http.StatusForbidden, publicMessage(err, apperrors.ErrForbidden))
	case errors.Is(err, apperrors.ErrNotFound):
		log.Info("resource not found", sl.Err(err))
		s.respondError(w, http.StatusNotFound, apperrors.ErrNotFound.Error())
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrAlreadyExists):
		log.Info("request conflicts with current state", sl.Err(err))
		s.respondError(w, http.StatusConflict, publicMessage(err, apperrors.ErrConflict))
	case errors.Is(err, apperrors.ErrRateLimited):
		s.respondError(w, http.StatusTooManyRequests, apperrors.ErrRateLimited.Error())
	default:
		log.Error("service error occurred", sl.Err(err))
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// publicMessage returns the first message in the chain that was not added
// by an internal layer.
func publicMessage(err, kind error) string {
	for e := err; e != nil; e = unwrapFirst(e) {
		if msg := e.Error(); !strings.HasPrefix(msg, "internal.") {
			return msg
		}
	}

	return kind.Error()
}

func unwrapFirst(err error) error {
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return u.Unwrap()
	case interface{ Unwrap() []error }:
		if errs := u.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}

	return nil
}
