package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrRateLimited    = errors.New("too many requests")
)

var (
	ErrIdentityRequired = fmt.Errorf("%w: at least one of email, phone or facebook_id is required", ErrValidation)
	ErrEmptyQuery       = fmt.Errorf("%w: search query must not be empty", ErrValidation)
	ErrUnsupportedImage = fmt.Errorf("%w: only image files are accepted", ErrValidation)
	ErrImageTooLarge    = fmt.Errorf("%w: image exceeds the 5 MiB limit", ErrValidation)
	ErrNoImages         = fmt.Errorf("%w: no images provided", ErrValidation)

	ErrReportNotDeletable = fmt.Errorf("%w: only pending or rejected reports can be deleted", ErrConflict)
	ErrImageLimit         = fmt.Errorf("%w: a report can have at most 5 images", ErrConflict)
	ErrStatusChanged      = fmt.Errorf("%w: report status was changed concurrently", ErrConflict)

	ErrAccountSuspended = fmt.Errorf("%w: account is suspended", ErrForbidden)
	ErrNotReportOwner   = fmt.Errorf("%w: report belongs to another user", ErrForbidden)
	ErrAdminOnly        = fmt.Errorf("%w: only administrators can perform this transition", ErrForbidden)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
)

// ErrInvalidTransition is matched by every *InvalidTransitionError.
var ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrConflict)

type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change report status from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition || target == ErrConflict
}

type UserAlreadyExistsError struct{ Email string }

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("user with email '%s' already exists", e.Email)
}
func (e *UserAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

type AdminAlreadyExistsError struct{ Username string }

func (e *AdminAlreadyExistsError) Error() string {
	return fmt.Sprintf("admin '%s' already exists", e.Username)
}
func (e *AdminAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }
