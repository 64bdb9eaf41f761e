package application

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

// CreateApplicationRequest - fields submitted by the candidate plus the resume
type CreateApplicationRequest struct {
	FullName         string
	Email            string
	PhoneNumber      string
	LinkedinProfile  string
	PortfolioWebsite string
	JobPosition      string
	AdditionalNotes  string
	Resume           *filex.File
}

// UpdateStatusRequest - body of PUT /admin/applications/{id}/status
type UpdateStatusRequest struct {
	Status     Status `json:"status"`
	Notes      string `json:"notes,omitempty"`
	ReviewedBy string `json:"reviewedBy,omitempty"`
}

// ListResponse - one page of applications plus counts
type ListResponse struct {
	Applications []AdminApplication `json:"applications"`
	TotalCount   int                `json:"totalCount"`
	TotalPages   int                `json:"totalPages"`
	CurrentPage  int                `json:"currentPage"`
	PageSize     int                `json:"pageSize"`
}

// NewListResponse converts a repository page into the wire response
func NewListResponse(p *kernel.Paginated[AdminApplication]) *ListResponse {
	items := p.Items
	if items == nil {
		items = []AdminApplication{}
	}
	return &ListResponse{
		Applications: items,
		TotalCount:   p.Page.Total,
		TotalPages:   p.Page.Pages,
		CurrentPage:  p.Page.Number,
		PageSize:     p.Page.Size,
	}
}

// FileUploadResponse - result of POST /upload
type FileUploadResponse struct {
	FileURL  kernel.FileURL `json:"fileUrl"`
	FileName string         `json:"fileName"`
}

// Blob is a downloaded binary payload
type Blob struct {
	ContentType string
	FileName    string
	Data        []byte
}

// ============================================================================
// Filters
// ============================================================================

const dateLayout = "2006-01-02"

// Filters is an ephemeral query over the application collection.
// Zero values mean "no constraint".
type Filters struct {
	Status      Status
	JobPosition string
	Search      string
	DateFrom    *time.Time
	DateTo      *time.Time
}

func (f Filters) IsEmpty() bool {
	return f.Status == "" && f.JobPosition == "" && f.Search == "" && f.DateFrom == nil && f.DateTo == nil
}

// Match applies exact-match filters, then the search, then the date range
func (f Filters) Match(a *Application) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.JobPosition != "" && string(a.JobPosition) != f.JobPosition {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.FullName), needle) &&
			!strings.Contains(strings.ToLower(string(a.Email)), needle) &&
			!strings.Contains(strings.ToLower(string(a.JobPosition)), needle) {
			return false
		}
	}
	if f.DateFrom != nil && a.SubmittedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && a.SubmittedAt.After(*f.DateTo) {
		return false
	}
	return true
}

// Apply returns the matching applications in their original order
func (f Filters) Apply(apps []AdminApplication) []AdminApplication {
	out := make([]AdminApplication, 0, len(apps))
	for i := range apps {
		if f.Match(&apps[i].Application) {
			out = append(out, apps[i])
		}
	}
	return out
}

// Values encodes the filters as query parameters, omitting empty ones
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.JobPosition != "" {
		v.Set("jobPosition", f.JobPosition)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.DateFrom != nil {
		v.Set("dateFrom", f.DateFrom.UTC().Format(time.RFC3339))
	}
	if f.DateTo != nil {
		v.Set("dateTo", f.DateTo.UTC().Format(time.RFC3339))
	}
	return v
}

// ParseFilters reads filters from query parameters. A bare date in dateTo
// covers the whole day.
func ParseFilters(query func(key string) string) (Filters, error) {
	var f Filters

	if s := query("status"); s != "" {
		status, err := ParseStatus(s)
		if err != nil {
			return Filters{}, err
		}
		f.Status = status
	}
	f.JobPosition = query("jobPosition")
	f.Search = query("search")

	if s := query("dateFrom"); s != "" {
		t, _, err := parseDate(s)
		if err != nil {
			return Filters{}, ErrInvalidRequest().WithDetail("dateFrom", s)
		}
		f.DateFrom = &t
	}
	if s := query("dateTo"); s != "" {
		t, dateOnly, err := parseDate(s)
		if err != nil {
			return Filters{}, ErrInvalidRequest().WithDetail("dateTo", s)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.DateTo = &t
	}
	return f, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateLayout, s)
	return t, true, err
}

// ParsePagination reads page/pageSize, falling back to 1 and 10
func ParsePagination(query func(key string) string) kernel.PaginationOptions {
	page, _ := strconv.Atoi(query("page"))
	pageSize, _ := strconv.Atoi(query("pageSize"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize()
}
