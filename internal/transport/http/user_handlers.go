package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/service"
	"github.com/YusovID/fraud-registry/pkg/api"
)

const (
	uploadFormField = "images"
	// room for five full-size images plus form overhead
	maxUploadBody   = domain.MaxImagesPerReport*domain.MaxImageSize + 1<<20
	uploadMemory    = 8 << 20
)

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getProfile"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.users.GetProfile(r.Context(), p.ID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, user)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateProfile"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req api.UpdateProfileRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), p.ID, req.Name, req.ProfilePicture)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, user)
}

func (s *Server) getOwnStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getOwnStats"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	stats, err := s.reports.GetOwnStats(r.Context(), p.ID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, stats)
}

func (s *Server) createReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createReport"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req api.CreateReportRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	report, err := s.reports.CreateReport(r.Context(), p.ID, domain.NewReport{
		Email:       req.Email,
		Phone:       req.Phone,
		FacebookID:  req.FacebookID,
		Description: req.Description,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusCreated, report)
}

// uploadImages accepts a multipart form with a reportId field and up to
// five files under "images".
func (s *Server) uploadImages(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.uploadImages"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.handleServiceError(w, r, op, apperrors.ErrImageTooLarge)
			return
		}

		s.handleServiceError(w, r, op, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err))

		return
	}

	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	reportID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("reportId")), 10, 64)
	if err != nil || reportID < 1 {
		s.handleServiceError(w, r, op, fmt.Errorf("%w: reportId must be a positive integer", apperrors.ErrValidation))
		return
	}

	files, err := readUploads(r.MultipartForm.File[uploadFormField])
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	images, err := s.reports.UploadImages(r.Context(), p.ID, reportID, files)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusCreated, images)
}

func readUploads(headers []*multipart.FileHeader) ([]service.ImageUpload, error) {
	if len(headers) > domain.MaxImagesPerReport {
		return nil, apperrors.ErrImageLimit
	}

	files := make([]service.ImageUpload, 0, len(headers))

	for _, fh := range headers {
		if fh.Size > domain.MaxImageSize {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrImageTooLarge, fh.Filename)
		}

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
		}

		data, err := io.ReadAll(io.LimitReader(f, domain.MaxImageSize+1))
		f.Close()

		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
		}

		files = append(files, service.ImageUpload{Name: fh.Filename, Data: data})
	}

	return files, nil
}

func (s *Server) listOwnReports(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listOwnReports"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	filter, err := parseReportFilter(r.URL.Query())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	list, err := s.reports.ListOwnReports(r.Context(), p.ID, filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, list)
}

func (s *Server) getOwnReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getOwnReport"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	report, err := s.reports.GetOwnReport(r.Context(), p.ID, id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, report)
}

func (s *Server) deleteOwnReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteOwnReport"

	s.deleteReportAs(w, r, op)
}

func (s *Server) resubmitReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.resubmitReport"

	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req api.UpdateReportStatusRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	report, err := s.moderation.ResubmitReport(r.Context(), p.ID, id, domain.ReportStatus(req.Status))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, report)
}

// deleteReportAs deletes the report in the path on behalf of the caller.
func (s *Server) deleteReportAs(w http.ResponseWriter, r *http.Request, op string) {
	p, err := auth.MustPrincipal(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.reports.DeleteReport(r.Context(), p.Actor(), id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondOK(w, http.StatusOK, api.Message{Message: "report deleted"})
}
