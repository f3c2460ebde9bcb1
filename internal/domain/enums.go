package domain

import (
	"fmt"

	"github.com/YusovID/fraud-registry/internal/apperrors"
)

type ReportStatus string

const (
	StatusPending  ReportStatus = "PENDING"
	StatusApproved ReportStatus = "APPROVED"
	StatusRejected ReportStatus = "REJECTED"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}

	return false
}

func (s ReportStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending review"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	}

	return string(s)
}

func ParseReportStatus(s string) (ReportStatus, error) {
	status := ReportStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown report status %q", apperrors.ErrValidation, s)
	}

	return status, nil
}

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserSuspended:
		return true
	}

	return false
}

func ParseUserStatus(s string) (UserStatus, error) {
	status := UserStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown user status %q", apperrors.ErrValidation, s)
	}

	return status, nil
}

// AdminRole is a label only; every role has the same permissions.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "SUPER_ADMIN"
	RoleModerator  AdminRole = "MODERATOR"
)

func (r AdminRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleModerator:
		return true
	}

	return false
}

type ActorKind string

const (
	ActorUser  ActorKind = "user"
	ActorAdmin ActorKind = "admin"
)

func (k ActorKind) Valid() bool {
	switch k {
	case ActorUser, ActorAdmin:
		return true
	}

	return false
}

// Actor is whoever requests a change: an end user or an administrator.
type Actor struct {
	Kind ActorKind
	ID   int64
}

func UserActor(id int64) Actor  { return Actor{Kind: ActorUser, ID: id} }
func AdminActor(id int64) Actor { return Actor{Kind: ActorAdmin, ID: id} }

func (a Actor) IsAdmin() bool { return a.Kind == ActorAdmin }
