// Package api holds the JSON shapes exchanged with HTTP clients.
package api

import "time"

// Envelope wraps every response body.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

type Image struct {
	ImageID       int64  `json:"image_id"`
	ImageFilename string `json:"image_filename"`
	OriginalName  string `json:"original_name"`
	MimeType      string `json:"mime_type"`
	SizeBytes     int64  `json:"size_bytes"`
	URL           string `json:"url"`
}

type ReportOwner struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name,omitempty"`
}

type ReportReviewer struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username,omitempty"`
}

type Report struct {
	ReportID        int64           `json:"report_id"`
	Email           *string         `json:"email"`
	Phone           *string         `json:"phone"`
	FacebookID      *string         `json:"facebook_id"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	StatusLabel     string          `json:"status_label"`
	RejectionReason *string         `json:"rejection_reason"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ApprovedAt      *time.Time      `json:"approved_at"`
	ReportImages    []Image         `json:"report_images"`
	User            *ReportOwner    `json:"user,omitempty"`
	Admin           *ReportReviewer `json:"admin,omitempty"`
}

type ReportList struct {
	Reports    []Report   `json:"reports"`
	Pagination Pagination `json:"pagination"`
}

type SearchHit struct {
	Report
	MatchedOn       []string `json:"matched_on"`
	IdentitySummary string   `json:"identity_summary"`
}

type SearchResult struct {
	Query   string      `json:"query"`
	Fields  []string    `json:"fields"`
	Reports []SearchHit `json:"reports"`
	Count   int         `json:"count"`
}

type UserCounts struct {
	FraudReports    int `json:"fraud_reports"`
	ApprovedReports int `json:"approved_reports"`
}

type User struct {
	UserID         int64       `json:"user_id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	ProfilePicture *string     `json:"profile_picture"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	LastLoginAt    *time.Time  `json:"last_login_at"`
	Count          *UserCounts `json:"_count,omitempty"`
}

type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type Admin struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user,omitempty"`
	Admin       *Admin    `json:"admin,omitempty"`
}

type ReportStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type SiteStats struct {
	TotalReports     int `json:"totalReports"`
	Emails           int `json:"emails"`
	Phones           int `json:"phones"`
	FacebookProfiles int `json:"facebookProfiles"`
}

type UserStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Suspended    int `json:"suspended"`
	NewLastMonth int `json:"newLastMonth"`
}

type UserActivity struct {
	User          User        `json:"user"`
	Stats         ReportStats `json:"stats"`
	RecentReports []Report    `json:"recentReports"`
}

type DashboardOverview struct {
	TotalUsers      int `json:"totalUsers"`
	TotalReports    int `json:"totalReports"`
	PendingReports  int `json:"pendingReports"`
	ApprovedReports int `json:"approvedReports"`
	RejectedReports int `json:"rejectedReports"`
}

type Dashboard struct {
	Overview      DashboardOverview `json:"overview"`
	RecentReports []Report          `json:"recentReports"`
}

type Message struct {
	Message string `json:"message"`
}

// Request bodies.

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type CreateReportRequest struct {
	Email       string `json:"email" validate:"omitempty,email,max=254"`
	Phone       string `json:"phone" validate:"omitempty,phone_chars,max=32"`
	FacebookID  string `json:"facebook_id" validate:"omitempty,max=512"`
	Description string `json:"description" validate:"required,max=5000"`
}

type UpdateReportStatusRequest struct {
	Status          string `json:"status" validate:"required,report_status"`
	RejectionReason string `json:"rejectionReason" validate:"max=2000"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,user_status"`
}

type UpdateProfileRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=100"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url,max=2048"`
}
