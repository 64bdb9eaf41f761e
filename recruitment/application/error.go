package application

import (
	"net/http"

	"github.com/Abraxas-365/hireflow/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeValidationFailed    = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusUnprocessableEntity, "Application validation failed")
	CodeTransportFailed     = ErrRegistry.Register("TRANSPORT_FAILED", errx.TypeExternal, http.StatusBadGateway, "Request to the applications backend failed")
	CodeInvalidStatus       = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid application status")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeResumeNotFound      = ErrRegistry.Register("RESUME_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeFileSizeTooLarge    = ErrRegistry.Register("FILE_SIZE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size must not exceed 10MB")
	CodeInvalidFileType     = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Only PDF and Word documents are allowed")
	CodeUnreadableResume    = ErrRegistry.Register("UNREADABLE_RESUME", errx.TypeValidation, http.StatusBadRequest, "Resume file could not be read")
	CodeApplicationExists   = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Application already exists")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrTransportFailed() *errx.Error {
	return ErrRegistry.New(CodeTransportFailed)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrFileSizeTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileSizeTooLarge)
}

func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

func ErrUnreadableResume() *errx.Error {
	return ErrRegistry.New(CodeUnreadableResume)
}

func ErrApplicationExists() *errx.Error {
	return ErrRegistry.New(CodeApplicationExists)
}

// IsNotFound reports whether err means the application does not exist
func IsNotFound(err error) bool {
	return errx.IsCode(err, CodeApplicationNotFound)
}
