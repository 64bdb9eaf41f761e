package applicationinfra

import (
	"context"
	"sync"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/application"
)

// MemoryApplicationRepository keeps applications in insertion order
type MemoryApplicationRepository struct {
	mu    sync.RWMutex
	apps  []application.AdminApplication
	index map[kernel.ApplicationID]int
}

// NewMemoryApplicationRepository creates a repository holding copies of seed
func NewMemoryApplicationRepository(seed ...application.AdminApplication) *MemoryApplicationRepository {
	r := &MemoryApplicationRepository{
		apps:  make([]application.AdminApplication, 0, len(seed)),
		index: make(map[kernel.ApplicationID]int, len(seed)),
	}
	for _, app := range seed {
		r.index[app.ID] = len(r.apps)
		r.apps = append(r.apps, clone(app))
	}
	return r
}

var _ application.Repository = (*MemoryApplicationRepository)(nil)

// clone detaches the review timestamp so callers never share it with the store
func clone(app application.AdminApplication) application.AdminApplication {
	if app.ReviewedAt != nil {
		at := *app.ReviewedAt
		app.ReviewedAt = &at
	}
	return app
}

func (r *MemoryApplicationRepository) Create(ctx context.Context, app *application.AdminApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[app.ID]; exists {
		return application.ErrApplicationExists().WithDetail("id", app.ID)
	}
	r.index[app.ID] = len(r.apps)
	r.apps = append(r.apps, clone(*app))
	return nil
}

func (r *MemoryApplicationRepository) Update(ctx context.Context, app *application.AdminApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[app.ID]
	if !ok {
		return application.ErrApplicationNotFound().WithDetail("id", app.ID)
	}
	r.apps[i] = clone(*app)
	return nil
}

func (r *MemoryApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.AdminApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, application.ErrApplicationNotFound().WithDetail("id", id)
	}
	app := clone(r.apps[i])
	return &app, nil
}

func (r *MemoryApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return application.ErrApplicationNotFound().WithDetail("id", id)
	}

	r.apps = append(r.apps[:i], r.apps[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.apps); j++ {
		r.index[r.apps[j].ID] = j
	}
	return nil
}

func (r *MemoryApplicationRepository) Exists(ctx context.Context, id kernel.ApplicationID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[id]
	return ok, nil
}

func (r *MemoryApplicationRepository) List(ctx context.Context, filters application.Filters, pagination kernel.PaginationOptions) (*kernel.Paginated[application.AdminApplication], error) {
	matched, err := r.ListAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	page := kernel.PaginateSlice(matched, pagination)
	return &page, nil
}

func (r *MemoryApplicationRepository) ListAll(ctx context.Context, filters application.Filters) ([]application.AdminApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := filters.Apply(r.apps)
	for i := range matched {
		matched[i] = clone(matched[i])
	}
	return matched, nil
}

// Len returns the number of stored applications
func (r *MemoryApplicationRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apps)
}
