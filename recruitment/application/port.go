package application

import (
	"context"

	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

// Service is the contract consumed by the form and the admin tooling.
// The mock and HTTP adapters implement it identically.
type Service interface {
	SubmitApplication(ctx context.Context, req CreateApplicationRequest) (*Application, error)

	// GetApplications filters then paginates; page and pageSize below 1 fall back to 1 and 10
	GetApplications(ctx context.Context, filters Filters, page, pageSize int) (*ListResponse, error)

	GetApplicationByID(ctx context.Context, id kernel.ApplicationID) (*AdminApplication, error)

	UpdateApplicationStatus(ctx context.Context, id kernel.ApplicationID, req UpdateStatusRequest) (*AdminApplication, error)

	DeleteApplication(ctx context.Context, id kernel.ApplicationID) error

	DownloadResume(ctx context.Context, id kernel.ApplicationID) (*Blob, error)

	// ExportApplications returns a CSV blob
	ExportApplications(ctx context.Context, filters Filters) (*Blob, error)

	GetJobPositions(ctx context.Context) ([]string, error)

	UploadFile(ctx context.Context, file *filex.File) (*FileUploadResponse, error)
}

// Repository stores applications for the reference backend and the mock
type Repository interface {
	// Create stores a new application; ids must be unique
	Create(ctx context.Context, app *AdminApplication) error

	// Update replaces an existing application
	Update(ctx context.Context, app *AdminApplication) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*AdminApplication, error)

	// Delete removes an application by ID
	Delete(ctx context.Context, id kernel.ApplicationID) error

	// Exists checks if an application exists by ID
	Exists(ctx context.Context, id kernel.ApplicationID) (bool, error)

	// List filters and paginates
	List(ctx context.Context, filters Filters, pagination kernel.PaginationOptions) (*kernel.Paginated[AdminApplication], error)

	// ListAll returns every match without pagination, used by the export
	ListAll(ctx context.Context, filters Filters) ([]AdminApplication, error)
}

// Catalog provides the ordered list of open job positions
type Catalog interface {
	JobPositions(ctx context.Context) ([]string, error)
}
