package applicationform

import (
	"context"
	"strings"
	"testing"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/application"
)

const mb = 1024 * 1024

func validInput() Input {
	return Input{
		FullName:    "Alice Johnson",
		Email:       "alice@example.com",
		JobPosition: "Frontend Developer",
		ResumeFile:  &filex.File{Name: "alice.pdf", Size: 2 * mb, ContentType: filex.MimePDF},
	}
}

func TestValidateApplicationAccepts(t *testing.T) {
	in := validInput()
	in.PhoneNumber = "+1 (555) 123-4567"
	in.LinkedinProfile = "https://linkedin.com/in/alice"
	in.PortfolioWebsite = "https://alice.dev"
	in.AdditionalNotes = strings.Repeat("a", 1000)

	req, fe := ValidateApplication(in)
	if len(fe) != 0 {
		t.Fatalf("unexpected errors: %v", fe)
	}
	if req.FullName != in.FullName || req.PhoneNumber != in.PhoneNumber || req.Resume != in.ResumeFile {
		t.Fatalf("request does not carry the input: %+v", req)
	}
}

func TestValidateApplicationMessages(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*Input)
		field string
		msg   string
	}{
		{"short name", func(in *Input) { in.FullName = "A" }, "fullName", "Full name must be at least 2 characters"},
		{"long name", func(in *Input) { in.FullName = strings.Repeat("a", 101) }, "fullName", "Full name must not exceed 100 characters"},
		{"empty email", func(in *Input) { in.Email = "" }, "email", "Please enter a valid email address"},
		{"bad email", func(in *Input) { in.Email = "alice@" }, "email", "Please enter a valid email address"},
		{"leading zero phone", func(in *Input) { in.PhoneNumber = "0123456789" }, "phoneNumber", "Please enter a valid phone number"},
		{"letters in phone", func(in *Input) { in.PhoneNumber = "555-CALL" }, "phoneNumber", "Please enter a valid phone number"},
		{"linkedin without scheme", func(in *Input) { in.LinkedinProfile = "linkedin.com/in/alice" }, "linkedinProfile", "Please enter a valid LinkedIn profile URL"},
		{"not linkedin", func(in *Input) { in.LinkedinProfile = "https://github.com/alice" }, "linkedinProfile", "Please enter a valid LinkedIn profile URL"},
		{"bad website", func(in *Input) { in.PortfolioWebsite = "alice.dev" }, "portfolioWebsite", "Please enter a valid website URL"},
		{"no position", func(in *Input) { in.JobPosition = "" }, "jobPosition", "Please select a job position"},
		{"long notes", func(in *Input) { in.AdditionalNotes = strings.Repeat("a", 1001) }, "additionalNotes", "Additional notes must not exceed 1000 characters"},
		{"no resume", func(in *Input) { in.ResumeFile = nil }, "resumeFile", MsgResumeRequired},
		{"big resume", func(in *Input) { in.ResumeFile.Size = 11 * mb }, "resumeFile", MsgResumeTooLarge},
		{"png resume", func(in *Input) { in.ResumeFile.ContentType = "image/png" }, "resumeFile", MsgResumeType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.edit(&in)
			_, fe := ValidateApplication(in)
			if got := fe[tc.field]; got != tc.msg {
				t.Fatalf("%s: got %q, want %q (all: %v)", tc.field, got, tc.msg, fe)
			}
			if len(fe) != 1 {
				t.Fatalf("expected only %s to fail, got %v", tc.field, fe)
			}
		})
	}
}

func TestValidateApplicationKnownLimits(t *testing.T) {
	in := validInput()
	in.LinkedinProfile = "http://evil.com/linkedin.com"
	in.JobPosition = "Astronaut"
	if _, fe := ValidateApplication(in); len(fe) != 0 {
		t.Fatalf("lax linkedin check and unchecked position must pass, got %v", fe)
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+1 (555) 123-4567"); got != "+15551234567" {
		t.Fatalf("NormalizePhone = %q", got)
	}
}

func TestValidateLogin(t *testing.T) {
	if fe := ValidateLogin(LoginInput{Email: "admin@example.com", Password: "secret"}); fe != nil {
		t.Fatalf("unexpected errors: %v", fe)
	}

	fe := ValidateLogin(LoginInput{Email: "admin", Password: "12345"})
	if fe["email"] != "Please enter a valid email address" {
		t.Fatalf("unexpected email message %q", fe["email"])
	}
	if fe["password"] != "Password must be at least 6 characters" {
		t.Fatalf("unexpected password message %q", fe["password"])
	}
}

func TestFieldErrorsErr(t *testing.T) {
	if err := (FieldErrors{}).Err(); err != nil {
		t.Fatalf("empty field errors must convert to nil")
	}

	err := FieldErrors{"email": "Please enter a valid email address"}.Err()
	if !errx.IsCode(err, application.CodeValidationFailed) || !errx.IsType(err, errx.TypeValidation) {
		t.Fatalf("unexpected error %v", err)
	}
	if err.Details["email"] != "Please enter a valid email address" {
		t.Fatalf("missing detail: %v", err.Details)
	}
}

type recordingService struct {
	application.Service
	got *application.CreateApplicationRequest
}

func (s *recordingService) SubmitApplication(ctx context.Context, req application.CreateApplicationRequest) (*application.Application, error) {
	s.got = &req
	return &application.Application{ID: kernel.ApplicationID("abc"), FullName: req.FullName, Status: application.StatusNew}, nil
}

func TestFormSubmit(t *testing.T) {
	svc := &recordingService{}
	form := NewForm()
	form.Input = validInput()
	form.ResumeFile = nil

	if _, err := form.Submit(context.Background(), svc); !errx.IsCode(err, application.CodeValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.got != nil {
		t.Fatalf("service must not be called with invalid input")
	}
	if form.Errors()["resumeFile"] != MsgResumeRequired {
		t.Fatalf("field errors not kept on the form: %v", form.Errors())
	}

	state := form.SelectFile(filex.New("alice.pdf", filex.MimePDF, []byte("%PDF-1.4")))
	if !state.Valid() || state.Extension != "pdf" || state.DisplaySize != "8 Bytes" {
		t.Fatalf("unexpected file state %+v", state)
	}
	if _, ok := form.Errors()["resumeFile"]; ok {
		t.Fatalf("selecting a file must clear its error")
	}

	app, err := form.Submit(context.Background(), svc)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.ID != "abc" || svc.got == nil || svc.got.Resume.Name != "alice.pdf" {
		t.Fatalf("unexpected submit result %+v / %+v", app, svc.got)
	}
}

func TestFormFileState(t *testing.T) {
	form := NewForm()
	if form.FileState().Selected {
		t.Fatalf("no file selected yet")
	}

	state := form.SelectFile(&filex.File{Name: "scan.png", Size: 5 * mb, ContentType: "image/png"})
	if state.TypeAccepted || !state.SizeAccepted || state.ErrorMessage != MsgResumeType {
		t.Fatalf("unexpected state for png: %+v", state)
	}

	// A new selection replaces the old one
	state = form.SelectFile(&filex.File{Name: "cv.docx", Size: 11 * mb, ContentType: filex.MimeDOCX})
	if state.Name != "cv.docx" || !state.TypeAccepted || state.SizeAccepted || state.DisplaySize != "11 MB" {
		t.Fatalf("unexpected state for docx: %+v", state)
	}

	form.ClearFile()
	if form.FileState().Selected {
		t.Fatalf("file must be cleared")
	}
}
