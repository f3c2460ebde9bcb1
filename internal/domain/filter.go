package domain

import "time"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	switch o {
	case SortAsc, SortDesc:
		return true
	}

	return false
}

type Page struct {
	Page  int
	Limit int
}

// Normalize fills zero values with defaults and clamps the limit.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = DefaultPage
	}

	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}

	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ReportFilter selects reports for paginated listings. Nil fields are not applied.
// IdentityField holds a wire field name (email, phone, facebook_id).
type ReportFilter struct {
	Status        *ReportStatus
	IdentityField *string
	OwnerID       *int64
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	SortBy        string
	SortOrder     SortOrder
	Page
}

type UserFilter struct {
	Status    *UserStatus
	Search    string
	SortBy    string
	SortOrder SortOrder
	Page
}
