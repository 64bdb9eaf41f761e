package application

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

// Status represents the review state of an application
type Status string

const (
	StatusNew         Status = "new"         // Just submitted
	StatusReviewed    Status = "reviewed"    // Looked at by a recruiter
	StatusShortlisted Status = "shortlisted" // Moving forward
	StatusRejected    Status = "rejected"    // Not moving forward
)

// Statuses lists every status in display order
var Statuses = []Status{StatusNew, StatusReviewed, StatusShortlisted, StatusRejected}

// ParseStatus accepts only the four known values
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidStatus().WithDetail("status", s)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusReviewed, StatusShortlisted, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusReviewed:
		return "Reviewed"
	case StatusShortlisted:
		return "Shortlisted"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

func (s Status) String() string { return string(s) }

// Application is a candidate's submitted job application
type Application struct {
	ID               kernel.ApplicationID `db:"id" json:"id"`
	FullName         string               `db:"full_name" json:"fullName"`
	Email            kernel.Email         `db:"email" json:"email"`
	PhoneNumber      string               `db:"phone_number" json:"phoneNumber,omitempty"`
	LinkedinProfile  string               `db:"linkedin_profile" json:"linkedinProfile,omitempty"`
	PortfolioWebsite string               `db:"portfolio_website" json:"portfolioWebsite,omitempty"`
	JobPosition      kernel.JobPosition   `db:"job_position" json:"jobPosition"`
	AdditionalNotes  string               `db:"additional_notes" json:"additionalNotes,omitempty"`
	ResumeFileName   string               `db:"resume_file_name" json:"resumeFileName"`
	ResumeFileURL    kernel.FileURL       `db:"resume_file_url" json:"resumeFileUrl"`
	Status           Status               `db:"status" json:"status"`
	SubmittedAt      time.Time            `db:"submitted_at" json:"submittedAt"`
	UpdatedAt        time.Time            `db:"updated_at" json:"updatedAt"`
}

// AdminApplication extends an application with the review fields only
// administrators see and write
type AdminApplication struct {
	Application
	Notes      string     `db:"notes" json:"notes,omitempty"`
	ReviewedBy string     `db:"reviewed_by" json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `db:"reviewed_at" json:"reviewedAt,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// touch refreshes UpdatedAt without letting it fall behind SubmittedAt
func (a *Application) touch(now time.Time) {
	if now.Before(a.SubmittedAt) {
		now = a.SubmittedAt
	}
	a.UpdatedAt = now
}

// IsReviewed checks if a reviewer has acted on the application
func (a *AdminApplication) IsReviewed() bool {
	return a.ReviewedAt != nil
}

// ApplyStatusUpdate moves the application to any status and records the review
func (a *AdminApplication) ApplyStatusUpdate(req UpdateStatusRequest, now time.Time) error {
	if !req.Status.IsValid() {
		return ErrInvalidStatus().WithDetail("status", req.Status)
	}

	a.Status = req.Status
	if req.Notes != "" {
		a.Notes = req.Notes
	}
	if req.ReviewedBy != "" {
		a.ReviewedBy = req.ReviewedBy
	}
	reviewedAt := now
	a.ReviewedAt = &reviewedAt
	a.touch(now)
	return nil
}

// NewApplication builds a freshly submitted application from a validated request
func NewApplication(id kernel.ApplicationID, req CreateApplicationRequest, resumeURL kernel.FileURL, now time.Time) *AdminApplication {
	app := &AdminApplication{
		Application: Application{
			ID:               id,
			FullName:         req.FullName,
			Email:            kernel.Email(req.Email),
			PhoneNumber:      req.PhoneNumber,
			LinkedinProfile:  req.LinkedinProfile,
			PortfolioWebsite: req.PortfolioWebsite,
			JobPosition:      kernel.JobPosition(req.JobPosition),
			AdditionalNotes:  req.AdditionalNotes,
			ResumeFileURL:    resumeURL,
			Status:           StatusNew,
			SubmittedAt:      now,
			UpdatedAt:        now,
		},
	}
	if req.Resume != nil {
		app.ResumeFileName = req.Resume.Name
	}
	return app
}

// ResumeURLFor is the public URL under which a resume file name is served
func ResumeURLFor(fileName string) kernel.FileURL {
	return kernel.FileURL("/files/resumes/" + fileName)
}
