package service

import (
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/pkg/api"
)

type urlBuilder interface {
	URL(key string) string
}

func toAPIImages(images []domain.Image, urls urlBuilder) []api.Image {
	out := make([]api.Image, 0, len(images))

	for _, img := range images {
		out = append(out, api.Image{
			ImageID:       img.ID,
			ImageFilename: img.Filename,
			OriginalName:  img.OriginalName,
			MimeType:      img.MimeType,
			SizeBytes:     img.SizeBytes,
			URL:           urls.URL(img.Filename),
		})
	}

	return out
}

// toAPIReport renders a report for its owner or an administrator.
func toAPIReport(r *domain.Report, urls urlBuilder) api.Report {
	out := toPublicReport(r, urls)
	out.RejectionReason = r.RejectionReason

	if r.OwnerID != nil {
		owner := &api.ReportOwner{UserID: *r.OwnerID}
		if r.OwnerName != nil {
			owner.Name = *r.OwnerName
		}

		out.User = owner
	}

	out.Admin = toAPIReviewer(r)

	return out
}

// toPublicReport omits who submitted the report. The reviewer is shown
// only once the report is approved.
func toPublicReport(r *domain.Report, urls urlBuilder) api.Report {
	out := api.Report{
		ReportID:     r.ID,
		Email:        r.Email,
		Phone:        r.Phone,
		FacebookID:   r.FacebookID,
		Description:  r.Description,
		Status:       string(r.Status),
		StatusLabel:  r.Status.Label(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		ApprovedAt:   r.ApprovedAt,
		ReportImages: toAPIImages(r.Images, urls),
	}

	if r.Status == domain.StatusApproved {
		out.Admin = toAPIReviewer(r)
	}

	return out
}

func toAPIReviewer(r *domain.Report) *api.ReportReviewer {
	if r.ReviewerID == nil {
		return nil
	}

	reviewer := &api.ReportReviewer{AdminID: *r.ReviewerID}
	if r.ReviewerUsername != nil {
		reviewer.Username = *r.ReviewerUsername
	}

	return reviewer
}

func toAPIReports(reports []domain.Report, urls urlBuilder) []api.Report {
	out := make([]api.Report, 0, len(reports))
	for i := range reports {
		out = append(out, toAPIReport(&reports[i], urls))
	}

	return out
}

func toAPIUser(u *domain.User) api.User {
	return api.User{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.AvatarURL,
		Status:         string(u.Status),
		CreatedAt:      u.CreatedAt,
		LastLoginAt:    u.LastLoginAt,
	}
}

func toAPIAdmin(a *domain.Admin) api.Admin {
	return api.Admin{AdminID: a.ID, Username: a.Username, Role: string(a.Role)}
}

func toAPIReportStats(s *domain.ReportStats) api.ReportStats {
	return api.ReportStats{
		Total:    s.Total,
		Pending:  s.Pending,
		Approved: s.Approved,
		Rejected: s.Rejected,
	}
}
