package domain

import "time"

type Report struct {
	ID               int64        `db:"id"`
	Email            *string      `db:"email"`
	Phone            *string      `db:"phone"`
	FacebookID       *string      `db:"facebook_id"`
	Description      string       `db:"description"`
	Status           ReportStatus `db:"status"`
	RejectionReason  *string      `db:"rejection_reason"`
	OwnerID          *int64       `db:"owner_id"`
	OwnerName        *string      `db:"owner_name"`
	ReviewerID       *int64       `db:"reviewer_id"`
	ReviewerUsername *string      `db:"reviewer_username"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
	ApprovedAt       *time.Time   `db:"approved_at"`
	Images           []Image
}

// IsOwnedBy reports whether userID submitted the report.
func (r *Report) IsOwnedBy(userID int64) bool {
	return r.OwnerID != nil && *r.OwnerID == userID
}

type Image struct {
	ID           int64     `db:"id"`
	ReportID     int64     `db:"report_id"`
	Filename     string    `db:"filename"`
	OriginalName string    `db:"original_name"`
	MimeType     string    `db:"mime_type"`
	SizeBytes    int64     `db:"size_bytes"`
	Position     int       `db:"position"`
	CreatedAt    time.Time `db:"created_at"`
}

type User struct {
	ID          int64      `db:"id"`
	GoogleID    string     `db:"google_id"`
	Name        string     `db:"name"`
	Email       string     `db:"email"`
	AvatarURL   *string    `db:"avatar_url"`
	Status      UserStatus `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	LastLoginAt *time.Time `db:"last_login_at"`
}

// UserWithCounts is a user row joined with the number of reports it owns.
type UserWithCounts struct {
	User
	TotalReports    int `db:"total_reports"`
	ApprovedReports int `db:"approved_reports"`
}

type Admin struct {
	ID           int64      `db:"id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	Role         AdminRole  `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}

type GoogleProfile struct {
	GoogleID  string
	Email     string
	Name      string
	AvatarURL string
}

type NewReport struct {
	Email       string
	Phone       string
	FacebookID  string
	Description string
}

type NewImage struct {
	Filename     string
	OriginalName string
	MimeType     string
	SizeBytes    int64
}

type ReportStats struct {
	Total        int `db:"total"`
	Pending      int `db:"pending"`
	Approved     int `db:"approved"`
	Rejected     int `db:"rejected"`
	WithEmail    int `db:"with_email"`
	WithPhone    int `db:"with_phone"`
	WithFacebook int `db:"with_facebook"`
}

type UserStats struct {
	Total        int `db:"total"`
	Active       int `db:"active"`
	Suspended    int `db:"suspended"`
	NewLastMonth int `db:"new_last_month"`
}
