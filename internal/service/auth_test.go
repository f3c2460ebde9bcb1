package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceImpl_GoogleLogin(t *testing.T) {
	ctx := context.Background()
	expiresAt := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	profile := &domain.GoogleProfile{GoogleID: "g-1", Email: "alice@example.com", Name: "Alice"}

	t.Run("Success: user upserted and token issued", func(t *testing.T) {
		users := new(UserRepositoryMock)
		tokens := new(TokenIssuerMock)
		verifier := new(IdentityVerifierMock)

		verifier.On("Verify", mock.Anything, "id-token").Return(profile, nil).Once()
		users.On("UpsertGoogleUser", mock.Anything, *profile, mock.AnythingOfType("time.Time")).
			Return(&domain.User{ID: 7, Name: "Alice", Email: "alice@example.com", Status: domain.UserActive}, nil).Once()
		tokens.On("Issue", auth.Principal{ID: 7, Kind: domain.ActorUser}).Return("jwt", expiresAt, nil).Once()

		svc := NewAuthService(discardLogger(), users, new(AdminRepositoryMock), tokens, verifier)

		resp, err := svc.GoogleLogin(ctx, "id-token")
		require.NoError(t, err)

		assert.Equal(t, "jwt", resp.AccessToken)
		assert.Equal(t, expiresAt, resp.ExpiresAt)
		require.NotNil(t, resp.User)
		assert.Equal(t, int64(7), resp.User.UserID)
		assert.Nil(t, resp.Admin)
	})

	t.Run("Failure: token rejected", func(t *testing.T) {
		verifier := new(IdentityVerifierMock)
		verifier.On("Verify", mock.Anything, "bad").Return(nil, apperrors.ErrInvalidToken).Once()

		svc := NewAuthService(discardLogger(), new(UserRepositoryMock), new(AdminRepositoryMock), new(TokenIssuerMock), verifier)

		_, err := svc.GoogleLogin(ctx, "bad")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAuthServiceImpl_AdminLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)

	admin := &domain.Admin{ID: 100, Username: "root", PasswordHash: hash, Role: domain.RoleSuperAdmin}

	testCases := []struct {
		name        string
		username    string
		password    string
		setupMocks  func(admins *AdminRepositoryMock, tokens *TokenIssuerMock)
		expectedErr error
	}{
		{
			name:     "Success",
			username: "root",
			password: "s3cret-pass",
			setupMocks: func(admins *AdminRepositoryMock, tokens *TokenIssuerMock) {
				admins.On("GetAdminByUsername", mock.Anything, "root").Return(admin, nil).Once()
				admins.On("TouchAdminLogin", mock.Anything, int64(100), mock.AnythingOfType("time.Time")).Return(nil).Once()
				tokens.On("Issue", auth.Principal{ID: 100, Kind: domain.ActorAdmin, Role: domain.RoleSuperAdmin}).
					Return("jwt", time.Now(), nil).Once()
			},
		},
		{
			name:     "Failure: wrong password",
			username: "root",
			password: "nope",
			setupMocks: func(admins *AdminRepositoryMock, tokens *TokenIssuerMock) {
				admins.On("GetAdminByUsername", mock.Anything, "root").Return(admin, nil).Once()
			},
			expectedErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "Failure: unknown admin",
			username: "ghost",
			password: "whatever",
			setupMocks: func(admins *AdminRepositoryMock, tokens *TokenIssuerMock) {
				admins.On("GetAdminByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound).Once()
			},
			expectedErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "Failure: repository error",
			username: "root",
			password: "s3cret-pass",
			setupMocks: func(admins *AdminRepositoryMock, tokens *TokenIssuerMock) {
				admins.On("GetAdminByUsername", mock.Anything, "root").Return(nil, errors.New("db down")).Once()
			},
			expectedErr: errors.New("db down"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			admins := new(AdminRepositoryMock)
			tokens := new(TokenIssuerMock)
			tc.setupMocks(admins, tokens)

			svc := NewAuthService(discardLogger(), new(UserRepositoryMock), admins, tokens, new(IdentityVerifierMock))

			resp, err := svc.AdminLogin(ctx, tc.username, tc.password)
			switch {
			case tc.expectedErr == nil:
				require.NoError(t, err)
				require.NotNil(t, resp.Admin)
				assert.Equal(t, "SUPER_ADMIN", resp.Admin.Role)
			case errors.Is(tc.expectedErr, apperrors.ErrUnauthorized):
				assert.ErrorIs(t, err, tc.expectedErr)
			default:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
			}

			admins.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthServiceImpl_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: admin token reissued", func(t *testing.T) {
		admins := new(AdminRepositoryMock)
		tokens := new(TokenIssuerMock)

		admins.On("GetAdminByID", mock.Anything, int64(100)).
			Return(&domain.Admin{ID: 100, Username: "root", Role: domain.RoleModerator}, nil).Once()
		tokens.On("Issue", auth.Principal{ID: 100, Kind: domain.ActorAdmin, Role: domain.RoleModerator}).
			Return("fresh", time.Now(), nil).Once()

		svc := NewAuthService(discardLogger(), new(UserRepositoryMock), admins, tokens, new(IdentityVerifierMock))

		resp, err := svc.Refresh(ctx, auth.Principal{ID: 100, Kind: domain.ActorAdmin})
		require.NoError(t, err)
		assert.Equal(t, "fresh", resp.AccessToken)
	})

	t.Run("Failure: deleted user", func(t *testing.T) {
		users := new(UserRepositoryMock)
		users.On("GetUserByID", mock.Anything, int64(7)).Return(nil, apperrors.ErrNotFound).Once()

		svc := NewAuthService(discardLogger(), users, new(AdminRepositoryMock), new(TokenIssuerMock), new(IdentityVerifierMock))

		_, err := svc.Refresh(ctx, auth.Principal{ID: 7, Kind: domain.ActorUser})
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
