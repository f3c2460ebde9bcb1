package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"google.golang.org/api/idtoken"
)

type ValidateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleVerifier checks Google ID tokens issued for our OAuth client.
type GoogleVerifier struct {
	clientID string
	validate ValidateFunc
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func NewGoogleVerifierWith(clientID string, validate ValidateFunc) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: validate}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*domain.GoogleProfile, error) {
	const op = "internal.auth.GoogleVerifier.Verify"

	if v.clientID == "" {
		return nil, fmt.Errorf("%s: %w: google sign-in is not configured", op, apperrors.ErrUnauthorized)
	}

	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, apperrors.ErrInvalidToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" || payload.Subject == "" {
		return nil, fmt.Errorf("%s: %w: token has no email", op, apperrors.ErrInvalidToken)
	}

	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("%s: %w: email is not verified", op, apperrors.ErrInvalidToken)
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	picture, _ := payload.Claims["picture"].(string)

	return &domain.GoogleProfile{
		GoogleID:  payload.Subject,
		Email:     strings.ToLower(email),
		Name:      name,
		AvatarURL: picture,
	}, nil
}
