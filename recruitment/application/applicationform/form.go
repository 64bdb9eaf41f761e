package applicationform

import (
	"context"

	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/recruitment/application"
)

// FileState is what the picker shows for the selected file
type FileState struct {
	Selected     bool   `json:"selected"`
	Name         string `json:"name,omitempty"`
	Extension    string `json:"extension,omitempty"`
	DisplaySize  string `json:"displaySize,omitempty"`
	TypeAccepted bool   `json:"typeAccepted"`
	SizeAccepted bool   `json:"sizeAccepted"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Valid reports whether the file can be submitted as is
func (s FileState) Valid() bool {
	return s.Selected && s.TypeAccepted && s.SizeAccepted
}

// Form holds the candidate's input between edits and submission.
// At most one resume file is selected at a time.
type Form struct {
	Input
	errors FieldErrors
}

func NewForm() *Form {
	return &Form{}
}

// SelectFile replaces any previously selected file
func (f *Form) SelectFile(file *filex.File) FileState {
	f.ResumeFile = file
	delete(f.errors, "resumeFile")
	return f.FileState()
}

func (f *Form) ClearFile() {
	f.ResumeFile = nil
}

func (f *Form) FileState() FileState {
	file := f.ResumeFile
	if file == nil {
		return FileState{}
	}
	msg, _ := ValidateResume(file)
	return FileState{
		Selected:     true,
		Name:         file.Name,
		Extension:    filex.FileExtension(file.Name),
		DisplaySize:  filex.FormatByteSize(file.Size),
		TypeAccepted: filex.IsAcceptedFileType(file),
		SizeAccepted: filex.IsAcceptableFileSize(file, filex.DefaultMaxMB),
		ErrorMessage: msg,
	}
}

// Errors returns the field errors from the last validation
func (f *Form) Errors() FieldErrors {
	return f.errors
}

func (f *Form) Validate() (application.CreateApplicationRequest, bool) {
	req, fe := ValidateApplication(f.Input)
	f.errors = fe
	return req, len(fe) == 0
}

// Submit validates and forwards the request. Field errors stay on the form
// and come back as a VALIDATION_FAILED error without calling the service.
func (f *Form) Submit(ctx context.Context, svc application.Service) (*application.Application, error) {
	req, ok := f.Validate()
	if !ok {
		return nil, f.errors.Err()
	}
	return svc.SubmitApplication(ctx, req)
}
