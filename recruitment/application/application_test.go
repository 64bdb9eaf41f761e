package application

import (
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

func sampleApps(now time.Time) []AdminApplication {
	mk := func(id, name, email, position string, status Status, daysAgo int) AdminApplication {
		at := now.Add(-time.Duration(daysAgo) * 24 * time.Hour)
		return AdminApplication{Application: Application{
			ID:          kernel.ApplicationID(id),
			FullName:    name,
			Email:       kernel.Email(email),
			JobPosition: kernel.JobPosition(position),
			Status:      status,
			SubmittedAt: at,
			UpdatedAt:   at,
		}}
	}
	return []AdminApplication{
		mk("1", "Alice Johnson", "alice@example.com", "Frontend Developer", StatusNew, 2),
		mk("2", "Bob Smith", "bob@example.com", "Backend Developer", StatusReviewed, 5),
		mk("3", "Carol Williams", "carol@example.com", "Full Stack Developer", StatusShortlisted, 7),
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Fatalf("ParseStatus(%q) = %q, %v", s, got, err)
		}
		if s.Label() == "Unknown" {
			t.Fatalf("status %q has no label", s)
		}
	}

	if _, err := ParseStatus("archived"); !errx.IsCode(err, CodeInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestFiltersMatch(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	apps := sampleApps(now)

	if got := (Filters{Search: "ALICE"}).Apply(apps); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("search must be case-insensitive, got %v", got)
	}
	if got := (Filters{Search: "developer"}).Apply(apps); len(got) != 3 {
		t.Fatalf("search must cover job position, got %d", len(got))
	}
	if got := (Filters{Status: StatusReviewed}).Apply(apps); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected status filter result: %v", got)
	}
	if got := (Filters{JobPosition: "Backend"}).Apply(apps); len(got) != 0 {
		t.Fatalf("job position must match exactly, got %v", got)
	}

	from := now.Add(-6 * 24 * time.Hour)
	if got := (Filters{DateFrom: &from}).Apply(apps); len(got) != 2 {
		t.Fatalf("expected 2 applications after dateFrom, got %d", len(got))
	}
}

func TestParseFilters(t *testing.T) {
	q := map[string]string{
		"status":      "shortlisted",
		"jobPosition": "Data Scientist",
		"dateTo":      "2026-03-01",
	}
	f, err := ParseFilters(func(k string) string { return q[k] })
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Status != StatusShortlisted || f.JobPosition != "Data Scientist" {
		t.Fatalf("unexpected filters: %+v", f)
	}
	endOfDay := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)
	if f.DateTo == nil || f.DateTo.Before(endOfDay) {
		t.Fatalf("a bare dateTo must cover the whole day, got %v", f.DateTo)
	}

	values := f.Values()
	if values.Get("status") != "shortlisted" || values.Get("search") != "" {
		t.Fatalf("unexpected encoded values: %v", values)
	}

	if _, err := ParseFilters(func(k string) string {
		if k == "status" {
			return "pending"
		}
		return ""
	}); err == nil {
		t.Fatalf("unknown status must be rejected")
	}
}

func TestApplyStatusUpdate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	app := sampleApps(now)[0]

	later := now.Add(time.Hour)
	err := app.ApplyStatusUpdate(UpdateStatusRequest{Status: StatusRejected, Notes: "not a fit", ReviewedBy: "jane"}, later)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if app.Status != StatusRejected || app.Notes != "not a fit" || app.ReviewedBy != "jane" {
		t.Fatalf("fields not merged: %+v", app)
	}
	if !app.UpdatedAt.Equal(later) || !app.IsReviewed() {
		t.Fatalf("timestamps not refreshed: %+v", app)
	}

	// Any status can move to any other
	if err := app.ApplyStatusUpdate(UpdateStatusRequest{Status: StatusNew}, later); err != nil {
		t.Fatalf("rejected -> new must be allowed: %v", err)
	}
	if app.Notes != "not a fit" {
		t.Fatalf("empty notes must not clear existing notes")
	}

	if err := app.ApplyStatusUpdate(UpdateStatusRequest{Status: "hired"}, later); err == nil {
		t.Fatalf("unknown status must be rejected")
	}

	early := app.SubmittedAt.Add(-time.Hour)
	_ = app.ApplyStatusUpdate(UpdateStatusRequest{Status: StatusReviewed}, early)
	if app.UpdatedAt.Before(app.SubmittedAt) {
		t.Fatalf("updatedAt must never precede submittedAt")
	}
}

func TestWriteCSV(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	apps := sampleApps(now)[:1]
	apps[0].FullName = `Alice "AJ" Johnson`

	blob, err := ExportCSV(apps)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if blob.ContentType != CSVContentType {
		t.Fatalf("unexpected content type %q", blob.ContentType)
	}

	lines := strings.Split(string(blob.Data), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 line, got %d", len(lines))
	}
	if lines[0] != "Full Name,Email,Phone Number,LinkedIn Profile,Portfolio Website,Job Position,Status,Submitted At" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	want := `"Alice ""AJ"" Johnson","alice@example.com","","","","Frontend Developer","new","2026-03-08T12:00:00.000Z"`
	if lines[1] != want {
		t.Fatalf("unexpected line:\n got %s\nwant %s", lines[1], want)
	}
}
