package applicationapi

import (
	"io"
	"mime"
	"mime/multipart"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationform"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SubmitApplication validates the multipart form and stores the application
// POST /applications
func (h *Handlers) SubmitApplication(c *fiber.Ctx) error {
	resume, err := formFile(c, "resumeFile")
	if err != nil {
		return err
	}

	req, fieldErrs := applicationform.ValidateApplication(applicationform.Input{
		FullName:         c.FormValue("fullName"),
		Email:            c.FormValue("email"),
		PhoneNumber:      c.FormValue("phoneNumber"),
		LinkedinProfile:  c.FormValue("linkedinProfile"),
		PortfolioWebsite: c.FormValue("portfolioWebsite"),
		JobPosition:      c.FormValue("jobPosition"),
		AdditionalNotes:  c.FormValue("additionalNotes"),
		ResumeFile:       resume,
	})
	if fieldErrs != nil {
		return fieldErrs.Err()
	}

	app, err := h.service.SubmitApplication(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetApplications lists applications matching the query filters
// GET /admin/applications
func (h *Handlers) GetApplications(c *fiber.Ctx) error {
	filters, err := application.ParseFilters(queryFunc(c))
	if err != nil {
		return err
	}
	pagination := application.ParsePagination(queryFunc(c))

	res, err := h.service.GetApplications(c.Context(), filters, pagination.Page, pagination.PageSize)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// GetApplicationByID retrieves an application by ID
// GET /admin/applications/:id
func (h *Handlers) GetApplicationByID(c *fiber.Ctx) error {
	applicationID, err := idParam(c)
	if err != nil {
		return err
	}

	app, err := h.service.GetApplicationByID(c.Context(), applicationID)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// UpdateApplicationStatus sets the status and review notes
// PUT /admin/applications/:id/status
func (h *Handlers) UpdateApplicationStatus(c *fiber.Ctx) error {
	applicationID, err := idParam(c)
	if err != nil {
		return err
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.UpdateApplicationStatus(c.Context(), applicationID, req)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// DeleteApplication deletes an application and its resume
// DELETE /admin/applications/:id
func (h *Handlers) DeleteApplication(c *fiber.Ctx) error {
	applicationID, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteApplication(c.Context(), applicationID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// DownloadResume downloads the resume file of an application
// GET /files/resume/:id
func (h *Handlers) DownloadResume(c *fiber.Ctx) error {
	applicationID, err := idParam(c)
	if err != nil {
		return err
	}

	blob, err := h.service.DownloadResume(c.Context(), applicationID)
	if err != nil {
		return err
	}

	return sendBlob(c, blob)
}

// ExportApplications writes the matching applications as CSV
// GET /admin/export
func (h *Handlers) ExportApplications(c *fiber.Ctx) error {
	filters, err := application.ParseFilters(queryFunc(c))
	if err != nil {
		return err
	}

	blob, err := h.service.ExportApplications(c.Context(), filters)
	if err != nil {
		return err
	}

	return sendBlob(c, blob)
}

// GetJobPositions returns the ordered position catalog
// GET /job-positions
func (h *Handlers) GetJobPositions(c *fiber.Ctx) error {
	positions, err := h.service.GetJobPositions(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(positions)
}

// UploadFile stores a standalone document
// POST /upload
func (h *Handlers) UploadFile(c *fiber.Ctx) error {
	file, err := formFile(c, "file")
	if err != nil {
		return err
	}
	if file == nil {
		return application.ErrInvalidRequest().WithDetail("file", "missing")
	}

	res, err := h.service.UploadFile(c.Context(), file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// OpenUpload serves a file previously stored by UploadFile
// GET /files/uploads/:uploadId/:name
func (h *Handlers) OpenUpload(c *fiber.Ctx) error {
	blob, err := h.service.OpenUpload(
		c.Context(),
		kernel.NewUploadID(c.Params("uploadId")),
		c.Params("name"),
	)
	if err != nil {
		return err
	}

	return sendBlob(c, blob)
}

// ============================================================================
// Helper Functions
// ============================================================================

func queryFunc(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.Query(key) }
}

func idParam(c *fiber.Ctx) (kernel.ApplicationID, error) {
	applicationID := kernel.NewApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return "", application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}
	return applicationID, nil
}

// formFile reads an optional multipart file; a missing part yields nil
func formFile(c *fiber.Ctx, field string) (*filex.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readPart(header)
}

func readPart(header *multipart.FileHeader) (*filex.File, error) {
	content, err := header.Open()
	if err != nil {
		return nil, application.ErrInvalidRequest().WithDetail("file_open_error", err.Error())
	}
	defer content.Close()

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, application.ErrInvalidRequest().WithDetail("file_read_error", err.Error())
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = filex.DetectContentType(header.Filename, data)
	}
	return filex.New(header.Filename, contentType, data), nil
}

func sendBlob(c *fiber.Ctx, blob *application.Blob) error {
	c.Set(fiber.HeaderContentType, blob.ContentType)
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": blob.FileName})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentDisposition, disposition)
	return c.Send(blob.Data)
}

// ErrorHandler converts internal errors to standard HTTP responses
func ErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error":   e.Message,
			"code":    e.Code,
			"message": e.Message,
		})
	}

	if e, ok := errx.As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	app.Post("/applications", handlers.SubmitApplication)
	app.Get("/job-positions", handlers.GetJobPositions)
	app.Post("/upload", handlers.UploadFile)

	admin := app.Group("/admin")
	admin.Get("/applications", handlers.GetApplications)
	admin.Get("/applications/:id", handlers.GetApplicationByID)
	admin.Put("/applications/:id/status", handlers.UpdateApplicationStatus)
	admin.Delete("/applications/:id", handlers.DeleteApplication)
	admin.Get("/export", handlers.ExportApplications)

	files := app.Group("/files")
	files.Get("/resume/:id", handlers.DownloadResume)
	files.Get("/uploads/:uploadId/:name", handlers.OpenUpload)
}
