// Package validation wraps go-playground/validator with the custom tags used
// by request bodies and renders failures as readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validate     = validator.New()
	phoneCharsRe = regexp.MustCompile(`^[+\d\s()-]+$`)
)

func init() {
	// Report messages with the JSON field names clients actually send.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}

		return name
	})

	rules := map[string]validator.Func{
		"report_status": func(fl validator.FieldLevel) bool {
			return domain.ReportStatus(fl.Field().String()).Valid()
		},
		"user_status": func(fl validator.FieldLevel) bool {
			return domain.UserStatus(fl.Field().String()).Valid()
		},
		"phone_chars": func(fl validator.FieldLevel) bool {
			v := strings.TrimSpace(fl.Field().String())
			// blank values are left to 'required' or the identity check
			return v == "" || phoneCharsRe.MatchString(v)
		},
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
		}
	}
}

// ValidationError holds one message per failed field.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

func (v *ValidationError) Is(target error) bool { return target == apperrors.ErrValidation }

func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	messages := make([]string, 0, len(fieldErrors))

	for _, fe := range fieldErrors {
		messages = append(messages, message(fe))
	}

	return &ValidationError{Errors: messages}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "report_status":
		return fmt.Sprintf("field '%s' must be one of PENDING, APPROVED, REJECTED", fe.Field())
	case "user_status":
		return fmt.Sprintf("field '%s' must be one of ACTIVE, SUSPENDED", fe.Field())
	case "phone_chars":
		return fmt.Sprintf(
			"field '%s' may contain only digits, spaces, '+', '-' and parentheses",
			fe.Field(),
		)
	case "email":
		return fmt.Sprintf("field '%s' must be a valid email address", fe.Field())
	case "min", "max":
		return fmt.Sprintf("field '%s' must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
}
