package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/repository"
	"github.com/YusovID/fraud-registry/pkg/api"
	"github.com/YusovID/fraud-registry/pkg/logger/sl"
)

type TokenIssuer interface {
	Issue(p auth.Principal) (string, time.Time, error)
}

type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*domain.GoogleProfile, error)
}

type AuthService interface {
	GoogleLogin(ctx context.Context, idToken string) (*api.AuthResponse, error)
	AdminLogin(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Refresh(ctx context.Context, p auth.Principal) (*api.AuthResponse, error)
}

type AuthServiceImpl struct {
	log      *slog.Logger
	now      func() time.Time
	users    repository.UserRepository
	admins   repository.AdminRepository
	tokens   TokenIssuer
	verifier IdentityVerifier
}

func NewAuthService(
	log *slog.Logger,
	users repository.UserRepository,
	admins repository.AdminRepository,
	tokens TokenIssuer,
	verifier IdentityVerifier,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		users:    users,
		admins:   admins,
		tokens:   tokens,
		verifier: verifier,
	}
}

func (s *AuthServiceImpl) GoogleLogin(ctx context.Context, idToken string) (*api.AuthResponse, error) {
	const op = "internal.service.auth.GoogleLogin"

	profile, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		logins.WithLabelValues(string(domain.ActorUser), "rejected").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.UpsertGoogleUser(ctx, *profile, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.userResponse(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logins.WithLabelValues(string(domain.ActorUser), "ok").Inc()
	s.log.Info("user signed in", slog.String("op", op), slog.Int64("user_id", user.ID))

	return resp, nil
}

func (s *AuthServiceImpl) AdminLogin(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	const op = "internal.service.auth.AdminLogin"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	admin, err := s.admins.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logins.WithLabelValues(string(domain.ActorAdmin), "rejected").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := auth.CheckPassword(admin.PasswordHash, password)
	if err != nil {
		log.Error("stored password hash is unusable", sl.Err(err))
	}

	if !ok {
		logins.WithLabelValues(string(domain.ActorAdmin), "rejected").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.admins.TouchAdminLogin(ctx, admin.ID, s.now()); err != nil {
		log.Warn("failed to record login time", sl.Err(err))
	}

	resp, err := s.adminResponse(admin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logins.WithLabelValues(string(domain.ActorAdmin), "ok").Inc()
	log.Info("admin signed in")

	return resp, nil
}

// Refresh issues a new token for a principal whose account still exists.
func (s *AuthServiceImpl) Refresh(ctx context.Context, p auth.Principal) (*api.AuthResponse, error) {
	const op = "internal.service.auth.Refresh"

	var (
		resp *api.AuthResponse
		err  error
	)

	switch p.Kind {
	case domain.ActorUser:
		var user *domain.User

		user, err = s.users.GetUserByID(ctx, p.ID)
		if err == nil {
			resp, err = s.userResponse(user)
		}
	case domain.ActorAdmin:
		var admin *domain.Admin

		admin, err = s.admins.GetAdminByID(ctx, p.ID)
		if err == nil {
			resp, err = s.adminResponse(admin)
		}
	default:
		return nil, apperrors.ErrInvalidToken
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrInvalidToken
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

func (s *AuthServiceImpl) userResponse(user *domain.User) (*api.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(auth.Principal{ID: user.ID, Kind: domain.ActorUser})
	if err != nil {
		return nil, err
	}

	out := toAPIUser(user)

	return &api.AuthResponse{AccessToken: token, ExpiresAt: expiresAt, User: &out}, nil
}

func (s *AuthServiceImpl) adminResponse(admin *domain.Admin) (*api.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(auth.Principal{ID: admin.ID, Kind: domain.ActorAdmin, Role: admin.Role})
	if err != nil {
		return nil, err
	}

	out := toAPIAdmin(admin)

	return &api.AuthResponse{AccessToken: token, ExpiresAt: expiresAt, Admin: &out}, nil
}
