// Package applicationmock answers the application service contract from an
// in-memory store seeded with demo data, after a simulated network delay.
package applicationmock

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationinfra"
)

const (
	DefaultDelay = 500 * time.Millisecond

	mockResumeContent = "Mock resume content"
	idLength          = 9
	idAlphabet        = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Service implements application.Service without a network
type Service struct {
	repo    *applicationinfra.MemoryApplicationRepository
	catalog application.Catalog
	delay   time.Duration
	now     func() time.Time
}

type Option func(*Service)

// WithDelay sets the simulated latency; zero disables it
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithClock replaces time.Now for seeding and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithCatalog(c application.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithApplications replaces the demo seed
func WithApplications(apps ...application.AdminApplication) Option {
	return func(s *Service) { s.repo = applicationinfra.NewMemoryApplicationRepository(apps...) }
}

// NewService creates a mock service seeded with the demo applications
func NewService(opts ...Option) *Service {
	s := &Service{
		catalog: application.StaticCatalog(application.DefaultJobPositions()),
		delay:   DefaultDelay,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.repo == nil {
		s.repo = applicationinfra.NewMemoryApplicationRepository(SeedApplications(s.now())...)
	}
	return s
}

var _ application.Service = (*Service)(nil)

// simulate logs the call and waits out the delay unless ctx ends first
func (s *Service) simulate(ctx context.Context, op string) error {
	logx.Debugf("MOCK API: %s", op)

	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func randomID() kernel.ApplicationID {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return kernel.ApplicationID(b)
}

func (s *Service) newID(ctx context.Context) (kernel.ApplicationID, error) {
	for {
		id := randomID()
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
}

func (s *Service) SubmitApplication(ctx context.Context, req application.CreateApplicationRequest) (*application.Application, error) {
	if err := s.simulate(ctx, "submitApplication"); err != nil {
		return nil, err
	}

	id, err := s.newID(ctx)
	if err != nil {
		return nil, err
	}

	var resumeURL kernel.FileURL
	if req.Resume != nil {
		resumeURL = application.ResumeURLFor(req.Resume.Name)
	}

	app := application.NewApplication(id, req, resumeURL, s.now())
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}
	return &app.Application, nil
}

func (s *Service) GetApplications(ctx context.Context, filters application.Filters, page, pageSize int) (*application.ListResponse, error) {
	if err := s.simulate(ctx, "getApplications"); err != nil {
		return nil, err
	}

	result, err := s.repo.List(ctx, filters, kernel.PaginationOptions{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}
	return application.NewListResponse(result), nil
}

func (s *Service) GetApplicationByID(ctx context.Context, id kernel.ApplicationID) (*application.AdminApplication, error) {
	if err := s.simulate(ctx, "getApplicationById"); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateApplicationStatus(ctx context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.AdminApplication, error) {
	if err := s.simulate(ctx, "updateApplicationStatus"); err != nil {
		return nil, err
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := app.ApplyStatusUpdate(req, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *Service) DeleteApplication(ctx context.Context, id kernel.ApplicationID) error {
	if err := s.simulate(ctx, "deleteApplication"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// DownloadResume returns the same placeholder document for any id
func (s *Service) DownloadResume(ctx context.Context, id kernel.ApplicationID) (*application.Blob, error) {
	if err := s.simulate(ctx, "downloadResume"); err != nil {
		return nil, err
	}
	return &application.Blob{
		ContentType: filex.MimePDF,
		FileName:    string(id) + ".pdf",
		Data:        []byte(mockResumeContent),
	}, nil
}

// ExportApplications serializes the whole collection; filters are ignored
func (s *Service) ExportApplications(ctx context.Context, filters application.Filters) (*application.Blob, error) {
	if err := s.simulate(ctx, "exportApplications"); err != nil {
		return nil, err
	}

	apps, err := s.repo.ListAll(ctx, application.Filters{})
	if err != nil {
		return nil, err
	}
	return application.ExportCSV(apps)
}

func (s *Service) GetJobPositions(ctx context.Context) ([]string, error) {
	if err := s.simulate(ctx, "getJobPositions"); err != nil {
		return nil, err
	}
	return s.catalog.JobPositions(ctx)
}

func (s *Service) UploadFile(ctx context.Context, file *filex.File) (*application.FileUploadResponse, error) {
	if err := s.simulate(ctx, "uploadFile"); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, application.ErrInvalidRequest().WithDetail("file", "missing")
	}
	return &application.FileUploadResponse{
		FileURL:  application.ResumeURLFor(file.Name),
		FileName: file.Name,
	}, nil
}
