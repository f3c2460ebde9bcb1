// Package identity guesses which identity field a free-text search query
// refers to and matches reports against it.
package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
)

type Field string

const (
	Email    Field = "email"
	Phone    Field = "phone"
	Facebook Field = "facebook_id"
)

// All is every field in display order.
var All = FieldSet{Email, Phone, Facebook}

func (f Field) Valid() bool {
	switch f {
	case Email, Phone, Facebook:
		return true
	}

	return false
}

// Column is the reports table column holding the field.
func (f Field) Column() string {
	return string(f)
}

func (f Field) Label() string {
	switch f {
	case Email:
		return "Email"
	case Phone:
		return "Phone"
	case Facebook:
		return "Facebook"
	}

	return string(f)
}

// Value returns the report's value for the field, or "" when unset.
func (f Field) Value(r *domain.Report) string {
	var v *string

	switch f {
	case Email:
		v = r.Email
	case Phone:
		v = r.Phone
	case Facebook:
		v = r.FacebookID
	}

	if v == nil {
		return ""
	}

	return *v
}

func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: unknown identity field %q", apperrors.ErrValidation, s)
	}

	return f, nil
}

// FieldSet is an ordered set of fields without duplicates.
type FieldSet []Field

// ParseFields parses a comma separated list such as "email,phone".
func ParseFields(csv string) (FieldSet, error) {
	var set FieldSet

	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		f, err := ParseField(part)
		if err != nil {
			return nil, err
		}

		if !set.Contains(f) {
			set = append(set, f)
		}
	}

	return set, nil
}

func (s FieldSet) Contains(f Field) bool {
	for _, v := range s {
		if v == f {
			return true
		}
	}

	return false
}

// Intersect keeps the fields of s that are also in other, preserving the order of s.
func (s FieldSet) Intersect(other FieldSet) FieldSet {
	out := make(FieldSet, 0, len(s))

	for _, f := range s {
		if other.Contains(f) {
			out = append(out, f)
		}
	}

	return out
}

func (s FieldSet) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = string(f)
	}

	return names
}

var phonePattern = regexp.MustCompile(`^[+\d\s()-]+$`)

// Classify returns the fields a query most likely refers to. The first
// matching rule wins; anything unrecognised searches every field.
func Classify(query string) FieldSet {
	q := strings.ToLower(strings.TrimSpace(query))

	switch {
	case q != "" && phonePattern.MatchString(q):
		return FieldSet{Phone}
	case strings.Contains(q, "@") && strings.Contains(q, "."):
		return FieldSet{Email}
	case strings.Contains(q, "facebook.com") || strings.Contains(q, "fb.com"):
		return FieldSet{Facebook}
	default:
		return FieldSet{Email, Phone, Facebook}
	}
}

// Matches reports whether any of the given fields of r contains query,
// ignoring case.
func Matches(r *domain.Report, fields FieldSet, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.Value(r)), q) {
			return true
		}
	}

	return false
}

// MatchedOn lists the fields of r that contain query, in the order of fields.
func MatchedOn(r *domain.Report, fields FieldSet, query string) FieldSet {
	var out FieldSet

	for _, f := range fields {
		if Matches(r, FieldSet{f}, query) {
			out = append(out, f)
		}
	}

	return out
}

// Summary renders the report's identity values as "Label: value" pairs,
// restricted to fields.
func Summary(r *domain.Report, fields FieldSet) string {
	parts := make([]string, 0, len(fields))

	for _, f := range fields {
		if v := f.Value(r); v != "" {
			parts = append(parts, f.Label()+": "+v)
		}
	}

	return strings.Join(parts, ", ")
}
