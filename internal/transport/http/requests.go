package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/identity"
	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

// Sort keys accepted from clients, in either naming style.
var sortKeys = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"approvedAt":  "approved_at",
	"lastLoginAt": "last_login_at",
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", apperrors.ErrValidation, name)
	}

	return id, nil
}

func queryInt(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", apperrors.ErrValidation, name)
	}

	return v, nil
}

func parsePage(q url.Values) (domain.Page, error) {
	page, err := queryInt(q, "page")
	if err != nil {
		return domain.Page{}, err
	}

	limit, err := queryInt(q, "limit")
	if err != nil {
		return domain.Page{}, err
	}

	return domain.Page{Page: page, Limit: limit}.Normalize(), nil
}

func parseSort(q url.Values) (string, domain.SortOrder, error) {
	sortBy := strings.TrimSpace(q.Get("sortBy"))
	if key, ok := sortKeys[sortBy]; ok {
		sortBy = key
	}

	order := domain.SortOrder(strings.ToLower(strings.TrimSpace(q.Get("sortOrder"))))
	if order == "" {
		order = domain.SortDesc
	}

	if !order.Valid() {
		return "", "", fmt.Errorf("%w: sortOrder must be asc or desc", apperrors.ErrValidation)
	}

	return sortBy, order, nil
}

// parseDate accepts RFC 3339 timestamps or plain dates. A plain date used as
// an upper bound covers the whole day.
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid date", apperrors.ErrValidation, raw)
	}

	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}

	return &t, nil
}

func parseReportFilter(q url.Values) (domain.ReportFilter, error) {
	var (
		f   domain.ReportFilter
		err error
	)

	if f.Page, err = parsePage(q); err != nil {
		return f, err
	}

	if f.SortBy, f.SortOrder, err = parseSort(q); err != nil {
		return f, err
	}

	if raw := strings.TrimSpace(q.Get("status")); raw != "" && !strings.EqualFold(raw, "all") {
		status, err := domain.ParseReportStatus(strings.ToUpper(raw))
		if err != nil {
			return f, err
		}

		f.Status = &status
	}

	if raw := strings.TrimSpace(q.Get("identityType")); raw != "" && !strings.EqualFold(raw, "all") {
		field, err := identity.ParseField(raw)
		if err != nil {
			return f, err
		}

		name := string(field)
		f.IdentityField = &name
	}

	if f.CreatedFrom, err = parseDate(q.Get("dateFrom"), false); err != nil {
		return f, err
	}

	if f.CreatedTo, err = parseDate(q.Get("dateTo"), true); err != nil {
		return f, err
	}

	return f, nil
}

func parseUserFilter(q url.Values) (domain.UserFilter, error) {
	var (
		f   domain.UserFilter
		err error
	)

	if f.Page, err = parsePage(q); err != nil {
		return f, err
	}

	if f.SortBy, f.SortOrder, err = parseSort(q); err != nil {
		return f, err
	}

	if raw := strings.TrimSpace(q.Get("status")); raw != "" && !strings.EqualFold(raw, "all") {
		status, err := domain.ParseUserStatus(strings.ToUpper(raw))
		if err != nil {
			return f, err
		}

		f.Status = &status
	}

	f.Search = strings.TrimSpace(q.Get("search"))

	return f, nil
}
