package applicationform

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern      = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)
	phoneSeparators   = regexp.MustCompile(`[\s\-()]`)
	websitePattern    = regexp.MustCompile(`^https?://.+`)
	formValidator     *validator.Validate
	fieldMessages     map[string]string
	fieldDefaultError map[string]string
)

func init() {
	formValidator = validator.New()

	// Report fields by their form name rather than the Go field name
	formValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	formValidator.RegisterValidation("phone", validatePhone)
	formValidator.RegisterValidation("linkedin", validateLinkedIn)
	formValidator.RegisterValidation("website", validateWebsite)

	fieldMessages = map[string]string{
		"fullName.min":        "Full name must be at least 2 characters",
		"fullName.max":        "Full name must not exceed 100 characters",
		"email.required":      "Please enter a valid email address",
		"email.email":         "Please enter a valid email address",
		"phoneNumber.phone":   "Please enter a valid phone number",
		"linkedinProfile":     "Please enter a valid LinkedIn profile URL",
		"portfolioWebsite":    "Please enter a valid website URL",
		"jobPosition":         "Please select a job position",
		"additionalNotes.max": "Additional notes must not exceed 1000 characters",
		"password.min":        "Password must be at least 6 characters",
	}
	fieldDefaultError = map[string]string{
		"fullName":        "Full name must be at least 2 characters",
		"email":           "Please enter a valid email address",
		"phoneNumber":     "Please enter a valid phone number",
		"additionalNotes": "Additional notes must not exceed 1000 characters",
		"password":        "Password must be at least 6 characters",
	}
}

// Resume file messages
const (
	MsgResumeRequired = "Please upload your resume"
	MsgResumeTooLarge = "File size must not exceed 10MB"
	MsgResumeType     = "Only PDF and Word documents are allowed"
)

// NormalizePhone strips whitespace, hyphens and parentheses
func NormalizePhone(s string) string {
	return phoneSeparators.ReplaceAllString(s, "")
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(NormalizePhone(fl.Field().String()))
}

// validateLinkedIn only checks for the linkedin.com substring and an http(s)
// scheme, so http://evil.com/linkedin.com passes
func validateLinkedIn(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return strings.Contains(v, "linkedin.com") &&
		(strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://"))
}

func validateWebsite(fl validator.FieldLevel) bool {
	return websitePattern.MatchString(fl.Field().String())
}

// Input is the raw application form
type Input struct {
	FullName         string      `form:"fullName" validate:"min=2,max=100"`
	Email            string      `form:"email" validate:"required,email"`
	PhoneNumber      string      `form:"phoneNumber" validate:"omitempty,phone"`
	LinkedinProfile  string      `form:"linkedinProfile" validate:"omitempty,linkedin"`
	PortfolioWebsite string      `form:"portfolioWebsite" validate:"omitempty,website"`
	JobPosition      string      `form:"jobPosition" validate:"required"`
	AdditionalNotes  string      `form:"additionalNotes" validate:"omitempty,max=1000"`
	ResumeFile       *filex.File `form:"resumeFile" validate:"-"`
}

// LoginInput is the standalone login form
type LoginInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"min=6"`
}

// FieldErrors maps a form field to the first message that applies to it
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err converts the field errors into the domain validation error, or nil
func (fe FieldErrors) Err() *errx.Error {
	if len(fe) == 0 {
		return nil
	}
	details := make(map[string]any, len(fe))
	for field, msg := range fe {
		details[field] = msg
	}
	return application.ErrValidationFailed().WithDetails(details)
}

func (fe FieldErrors) add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

// collect runs the struct rules and translates failures to messages
func collect(v any) FieldErrors {
	fe := FieldErrors{}

	err := formValidator.Struct(v)
	if err == nil {
		return fe
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fe.add("form", err.Error())
		return fe
	}

	for _, e := range validationErrs {
		field := e.Field()
		if msg, ok := fieldMessages[field+"."+e.Tag()]; ok {
			fe.add(field, msg)
		} else if msg, ok := fieldMessages[field]; ok {
			fe.add(field, msg)
		} else if msg, ok := fieldDefaultError[field]; ok {
			fe.add(field, msg)
		} else {
			fe.add(field, fmt.Sprintf("%s is invalid", field))
		}
	}
	return fe
}

// ValidateResume applies the size rule then the type rule to the chosen file
func ValidateResume(f *filex.File) (string, bool) {
	switch {
	case f == nil:
		return MsgResumeRequired, false
	case !filex.IsAcceptableFileSize(f, filex.DefaultMaxMB):
		return MsgResumeTooLarge, false
	case !filex.IsAcceptedFileType(f):
		return MsgResumeType, false
	default:
		return "", true
	}
}

// ValidateApplication checks the form and returns the request to submit.
// Job position membership in the catalog is not checked.
func ValidateApplication(in Input) (application.CreateApplicationRequest, FieldErrors) {
	fe := collect(in)
	if msg, ok := ValidateResume(in.ResumeFile); !ok {
		fe.add("resumeFile", msg)
	}
	if len(fe) > 0 {
		return application.CreateApplicationRequest{}, fe
	}

	return application.CreateApplicationRequest{
		FullName:         in.FullName,
		Email:            in.Email,
		PhoneNumber:      in.PhoneNumber,
		LinkedinProfile:  in.LinkedinProfile,
		PortfolioWebsite: in.PortfolioWebsite,
		JobPosition:      in.JobPosition,
		AdditionalNotes:  in.AdditionalNotes,
		Resume:           in.ResumeFile,
	}, nil
}

// ValidateLogin checks the login form. No flow submits it.
func ValidateLogin(in LoginInput) FieldErrors {
	fe := collect(in)
	if len(fe) == 0 {
		return nil
	}
	return fe
}
