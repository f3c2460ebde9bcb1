package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/YusovID/fraud-registry/internal/apperrors"
)

// StatusUpdate is the set of columns written by a single status transition.
type StatusUpdate struct {
	Status          ReportStatus
	ReviewerID      *int64
	RejectionReason *string
	UpdatedAt       time.Time
	ApprovedAt      *time.Time
}

func (r Report) StatusUpdate() StatusUpdate {
	return StatusUpdate{
		Status:          r.Status,
		ReviewerID:      r.ReviewerID,
		RejectionReason: r.RejectionReason,
		UpdatedAt:       r.UpdatedAt,
		ApprovedAt:      r.ApprovedAt,
	}
}

// Transition returns a copy of r moved to the target status on behalf of actor.
//
// Administrators may approve or reject a pending report, send a rejected report
// back to review, or reject it again with a new reason. Owners may only send
// their own rejected report back to review. Approved reports are final.
func Transition(r Report, actor Actor, to ReportStatus, reason string, now time.Time) (Report, error) {
	if !to.Valid() {
		return r, fmt.Errorf("%w: unknown report status %q", apperrors.ErrValidation, to)
	}

	switch actor.Kind {
	case ActorAdmin:
	case ActorUser:
		if !r.IsOwnedBy(actor.ID) {
			return r, apperrors.ErrNotReportOwner
		}

		if to != StatusPending {
			return r, apperrors.ErrAdminOnly
		}
	default:
		return r, apperrors.ErrForbidden
	}

	if !allowed(r.Status, to) {
		return r, &apperrors.InvalidTransitionError{From: string(r.Status), To: string(to)}
	}

	next := r
	next.Status = to
	next.UpdatedAt = now

	switch to {
	case StatusApproved:
		reviewer := actor.ID
		approvedAt := now
		next.ReviewerID = &reviewer
		next.ApprovedAt = &approvedAt
		next.RejectionReason = nil
	case StatusRejected:
		reviewer := actor.ID
		next.ReviewerID = &reviewer
		next.RejectionReason = optional(reason)
	case StatusPending:
		next.ReviewerID = nil
		next.ReviewerUsername = nil
		next.RejectionReason = nil
	}

	return next, nil
}

func allowed(from, to ReportStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusRejected:
		return to == StatusPending || to == StatusRejected
	case StatusApproved:
		return false
	}

	return false
}

// CanDelete fails with a conflict for published reports.
func CanDelete(status ReportStatus) error {
	switch status {
	case StatusPending, StatusRejected:
		return nil
	case StatusApproved:
		return apperrors.ErrReportNotDeletable
	}

	return fmt.Errorf("%w: unknown report status %q", apperrors.ErrValidation, status)
}

// CanAttachImages reports whether evidence may still be added to a report.
func CanAttachImages(status ReportStatus) bool {
	return status == StatusPending || status == StatusRejected
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}
