package http

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/config"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/pkg/logger/sl"
	"github.com/go-chi/chi/v5/middleware"
)

var errAdminRequired = fmt.Errorf("%w: administrator access required", apperrors.ErrForbidden)

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r.Context())

		log := s.log.With(
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)
		log.Debug("request started")

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t1 := time.Now()

		next.ServeHTTP(ww, r)

		log.Info("request completed",
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.String("duration", time.Since(t1).String()),
		)
	})
}

// authenticate requires a valid bearer token and stores its principal in the context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "internal.transport.http.authenticate"

		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			s.handleServiceError(w, r, op, apperrors.ErrUnauthorized)
			return
		}

		principal, err := s.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

func (s *Server) requireKind(kind domain.ActorKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "internal.transport.http.requireKind"

			p, err := auth.MustPrincipal(r.Context())
			if err != nil {
				s.handleServiceError(w, r, op, err)
				return
			}

			if p.Kind != kind {
				err := apperrors.ErrForbidden
				if kind == domain.ActorAdmin {
					err = errAdminRequired
				}

				s.handleServiceError(w, r, op, err)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimit counts requests per caller under name. Authenticated callers are
// keyed by principal, anonymous ones by client address. Limiter failures let
// the request through.
func (s *Server) rateLimit(name string, limit config.Limit) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if s.limiter == nil || limit.Requests <= 0 || limit.Window <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := name + ":ip:" + clientIP(r)
			if p, ok := auth.PrincipalFrom(r.Context()); ok {
				key = name + ":" + string(p.Kind) + ":" + strconv.FormatInt(p.ID, 10)
			}

			decision, err := s.limiter.Allow(r.Context(), key, limit.Requests, limit.Window)
			if err != nil {
				s.log.Error("rate limit check failed", sl.Err(err), slog.String("key", key))
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Requests))

			if !decision.Allowed {
				retry := int(math.Ceil(decision.RetryAfter.Seconds()))
				if retry < 1 {
					retry = 1
				}

				w.Header().Set("Retry-After", strconv.Itoa(retry))
				s.handleServiceError(w, r, "internal.transport.http.rateLimit", apperrors.ErrRateLimited)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
