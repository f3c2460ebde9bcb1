package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/config"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated caller carried by a bearer token.
type Principal struct {
	ID   int64
	Kind domain.ActorKind
	Role domain.AdminRole
}

func (p Principal) Actor() domain.Actor {
	return domain.Actor{Kind: p.Kind, ID: p.ID}
}

type Claims struct {
	Kind domain.ActorKind `json:"kind"`
	Role domain.AdminRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenManager(cfg config.Auth) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Issue signs an HS256 token for p and returns it with its expiry.
func (m *TokenManager) Issue(p Principal) (string, time.Time, error) {
	const op = "internal.auth.Issue"

	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Kind: p.Kind,
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: failed to sign token: %w", op, err)
	}

	return signed, expiresAt, nil
}

func (m *TokenManager) Parse(token string) (*Principal, error) {
	const op = "internal.auth.Parse"

	var claims Claims

	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, apperrors.ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s: %w: bad subject", op, apperrors.ErrInvalidToken)
	}

	if !claims.Kind.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown kind %q", op, apperrors.ErrInvalidToken, claims.Kind)
	}

	return &Principal{ID: id, Kind: claims.Kind, Role: claims.Role}, nil
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

var errNoPrincipal = errors.New("no principal in context")

// MustPrincipal is for handlers mounted behind the authentication middleware.
func MustPrincipal(ctx context.Context) (*Principal, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, errNoPrincipal)
	}

	return p, nil
}
