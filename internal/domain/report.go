package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/YusovID/fraud-registry/internal/apperrors"
)

const (
	MinDescriptionLen = 10
	MaxDescriptionLen = 5000

	MaxImagesPerReport = 5
	MaxImageSize       = 5 << 20
)

// Build validates the submission and returns a pending report owned by ownerID.
// Identity fields are trimmed and blank ones are dropped.
func (n NewReport) Build(ownerID int64) (Report, error) {
	r := Report{
		Email:       optional(n.Email),
		Phone:       optional(n.Phone),
		FacebookID:  optional(n.FacebookID),
		Description: strings.TrimSpace(n.Description),
		Status:      StatusPending,
		OwnerID:     &ownerID,
	}

	if r.Email == nil && r.Phone == nil && r.FacebookID == nil {
		return Report{}, apperrors.ErrIdentityRequired
	}

	if length := utf8.RuneCountInString(r.Description); length < MinDescriptionLen || length > MaxDescriptionLen {
		return Report{}, fmt.Errorf(
			"%w: description must be between %d and %d characters",
			apperrors.ErrValidation, MinDescriptionLen, MaxDescriptionLen,
		)
	}

	return r, nil
}
