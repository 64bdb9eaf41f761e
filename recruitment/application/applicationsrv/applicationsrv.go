package applicationsrv

import (
	"context"
	"errors"
	"io"
	"path"
	"time"

	"github.com/Abraxas-365/hireflow/internal/pdf"
	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/fsx"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/google/uuid"
)

// ApplicationService is the backend side of the application contract: it
// stores records in a repository and resume files in a file system
type ApplicationService struct {
	applicationRepo application.Repository
	catalog         application.Catalog
	fileSystem      fsx.FileSystem
	pageCount       func([]byte) (int, error)
	now             func() time.Time
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	applicationRepo application.Repository,
	catalog application.Catalog,
	fileSystem fsx.FileSystem,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		catalog:         catalog,
		fileSystem:      fileSystem,
		pageCount:       pdf.PageCount,
		now:             time.Now,
	}
}

var _ application.Service = (*ApplicationService)(nil)

// checkResume enforces size, type and PDF readability
func (s *ApplicationService) checkResume(file *filex.File) error {
	if file == nil {
		return application.ErrValidationFailed().WithDetail("resumeFile", "Please upload your resume")
	}

	if !filex.IsAcceptableFileSize(file, filex.DefaultMaxMB) {
		return application.ErrFileSizeTooLarge().
			WithDetail("file_size", file.Size).
			WithDetail("max_size", filex.MaxFileSize)
	}

	if !filex.IsAcceptedFileType(file) {
		return application.ErrInvalidFileType().
			WithDetail("content_type", file.ContentType).
			WithDetail("allowed_types", "pdf, doc, docx")
	}

	if file.ContentType == filex.MimePDF && s.pageCount != nil {
		pages, err := s.pageCount(file.Data)
		if err != nil {
			return application.ErrUnreadableResume().WithCause(err).WithDetail("file_name", file.Name)
		}
		logx.Debugf("resume %s has %d page(s)", file.Name, pages)
	}
	return nil
}

// validFileName rejects names that would leave their storage directory
func validFileName(name string) bool {
	return name != "" && name != "." && name != ".." && path.Base(name) == name
}

func resumePath(fs fsx.FileSystem, app *application.AdminApplication) string {
	return fs.Join("resumes", app.ID.String(), app.ResumeFileName)
}

// ResumeDownloadURL is where the backend serves the resume of id
func ResumeDownloadURL(id kernel.ApplicationID) kernel.FileURL {
	return kernel.FileURL("/files/resume/" + id.String())
}

// SubmitApplication stores the resume then the record
func (s *ApplicationService) SubmitApplication(ctx context.Context, req application.CreateApplicationRequest) (*application.Application, error) {
	if err := s.checkResume(req.Resume); err != nil {
		return nil, err
	}
	if !validFileName(req.Resume.Name) {
		return nil, application.ErrInvalidRequest().WithDetail("file_name", req.Resume.Name)
	}

	id := kernel.NewApplicationID(uuid.NewString())
	app := application.NewApplication(id, req, ResumeDownloadURL(id), s.now())

	storagePath := resumePath(s.fileSystem, app)
	if err := s.fileSystem.WriteFile(ctx, storagePath, req.Resume.Data); err != nil {
		return nil, errx.Wrap(err, "failed to store resume", errx.TypeExternal).
			WithDetail("path", storagePath)
	}

	if err := s.applicationRepo.Create(ctx, app); err != nil {
		// Cleanup uploaded file on failure
		if derr := s.fileSystem.DeleteFile(context.Background(), storagePath); derr != nil {
			logx.Warnf("failed to remove orphaned resume %s: %v", storagePath, derr)
		}
		if errx.IsCode(err, application.CodeApplicationExists) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	logx.Infof("application %s submitted for %s", app.ID, app.JobPosition)
	return &app.Application, nil
}

// GetApplications filters then paginates in the repository
func (s *ApplicationService) GetApplications(ctx context.Context, filters application.Filters, page, pageSize int) (*application.ListResponse, error) {
	pagination := kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize()

	result, err := s.applicationRepo.List(ctx, filters, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return application.NewListResponse(result), nil
}

// GetApplicationByID retrieves an application by ID
func (s *ApplicationService) GetApplicationByID(ctx context.Context, id kernel.ApplicationID) (*application.AdminApplication, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}
	return app, nil
}

// UpdateApplicationStatus moves the application to any status
func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.AdminApplication, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}

	if err := app.ApplyStatusUpdate(req, s.now()); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.Update(ctx, app); err != nil {
		return nil, errx.Wrap(err, "failed to update application status", errx.TypeInternal)
	}
	return app, nil
}

// DeleteApplication removes the record and its resume file
func (s *ApplicationService) DeleteApplication(ctx context.Context, id kernel.ApplicationID) error {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return s.lookupError(err, id)
	}

	if app.ResumeFileName != "" {
		storagePath := resumePath(s.fileSystem, app)
		if err := s.fileSystem.DeleteFile(ctx, storagePath); err != nil && !errors.Is(err, fsx.ErrNotExist) {
			return errx.Wrap(err, "failed to delete resume", errx.TypeExternal).
				WithDetail("path", storagePath)
		}
	}

	if err := s.applicationRepo.Delete(ctx, id); err != nil {
		return s.lookupError(err, id)
	}
	return nil
}

// DownloadResume reads the stored resume of an application
func (s *ApplicationService) DownloadResume(ctx context.Context, id kernel.ApplicationID) (*application.Blob, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}

	if app.ResumeFileName == "" {
		return nil, application.ErrResumeNotFound().WithDetail("application_id", id.String())
	}

	storagePath := resumePath(s.fileSystem, app)
	data, err := s.readFile(ctx, storagePath)
	if err != nil {
		if errors.Is(err, fsx.ErrNotExist) {
			return nil, application.ErrResumeNotFound().WithDetail("application_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to download resume", errx.TypeExternal).
			WithDetail("path", storagePath)
	}

	return &application.Blob{
		ContentType: filex.DetectContentType(app.ResumeFileName, data),
		FileName:    app.ResumeFileName,
		Data:        data,
	}, nil
}

func (s *ApplicationService) readFile(ctx context.Context, name string) ([]byte, error) {
	stream, err := s.fileSystem.ReadFileStream(ctx, name)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	return io.ReadAll(stream)
}

// ExportApplications renders every matching application as CSV
func (s *ApplicationService) ExportApplications(ctx context.Context, filters application.Filters) (*application.Blob, error) {
	apps, err := s.applicationRepo.ListAll(ctx, filters)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications for export", errx.TypeInternal)
	}
	return application.ExportCSV(apps)
}

func (s *ApplicationService) GetJobPositions(ctx context.Context) ([]string, error) {
	positions, err := s.catalog.JobPositions(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load job positions", errx.TypeExternal)
	}
	if positions == nil {
		positions = []string{}
	}
	return positions, nil
}

// UploadFile stores a loose document under uploads/<uuid>/<name>
func (s *ApplicationService) UploadFile(ctx context.Context, file *filex.File) (*application.FileUploadResponse, error) {
	if file == nil {
		return nil, application.ErrInvalidRequest().WithDetail("file", "missing")
	}
	if err := s.checkResume(file); err != nil {
		return nil, err
	}
	if !validFileName(file.Name) {
		return nil, application.ErrInvalidRequest().WithDetail("file_name", file.Name)
	}

	uploadID := kernel.NewUploadID(uuid.NewString())
	storagePath := s.fileSystem.Join("uploads", uploadID.String(), file.Name)
	if err := s.fileSystem.WriteFile(ctx, storagePath, file.Data); err != nil {
		return nil, errx.Wrap(err, "failed to store upload", errx.TypeExternal).
			WithDetail("path", storagePath)
	}

	return &application.FileUploadResponse{
		FileURL:  kernel.FileURL("/files/uploads/" + uploadID.String() + "/" + file.Name),
		FileName: file.Name,
	}, nil
}

// OpenUpload reads back a file stored by UploadFile
func (s *ApplicationService) OpenUpload(ctx context.Context, uploadID kernel.UploadID, name string) (*application.Blob, error) {
	if !validFileName(name) || !validFileName(uploadID.String()) {
		return nil, application.ErrInvalidRequest().WithDetail("file_name", name)
	}

	storagePath := s.fileSystem.Join("uploads", uploadID.String(), name)
	data, err := s.readFile(ctx, storagePath)
	if err != nil {
		if errors.Is(err, fsx.ErrNotExist) {
			return nil, application.ErrResumeNotFound().WithDetail("upload_id", uploadID.String())
		}
		return nil, errx.Wrap(err, "failed to read upload", errx.TypeExternal)
	}
	return &application.Blob{
		ContentType: filex.DetectContentType(name, data),
		FileName:    name,
		Data:        data,
	}, nil
}

// lookupError keeps NotFound as is and wraps everything else
func (s *ApplicationService) lookupError(err error, id kernel.ApplicationID) error {
	if application.IsNotFound(err) {
		return err
	}
	return errx.Wrap(err, "failed to load application", errx.TypeInternal).
		WithDetail("application_id", id.String())
}
