package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

var _ application.Repository = (*PostgresApplicationRepository)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS applications (
	id                TEXT PRIMARY KEY,
	full_name         TEXT NOT NULL,
	email             TEXT NOT NULL,
	phone_number      TEXT,
	linkedin_profile  TEXT,
	portfolio_website TEXT,
	job_position      TEXT NOT NULL,
	additional_notes  TEXT,
	resume_file_name  TEXT NOT NULL DEFAULT '',
	resume_file_url   TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'new',
	notes             TEXT,
	reviewed_by       TEXT,
	reviewed_at       TIMESTAMPTZ,
	submitted_at      TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL,
	CHECK (updated_at >= submitted_at)
);
CREATE INDEX IF NOT EXISTS applications_status_idx ON applications (status);
CREATE INDEX IF NOT EXISTS applications_submitted_at_idx ON applications (submitted_at);
`

// Migrate creates the applications table when missing
func (r *PostgresApplicationRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate applications schema: %w", err)
	}
	return nil
}

// ============================================================================
// Database Models
// ============================================================================

type applicationModel struct {
	ID               string         `db:"id"`
	FullName         string         `db:"full_name"`
	Email            string         `db:"email"`
	PhoneNumber      sql.NullString `db:"phone_number"`
	LinkedinProfile  sql.NullString `db:"linkedin_profile"`
	PortfolioWebsite sql.NullString `db:"portfolio_website"`
	JobPosition      string         `db:"job_position"`
	AdditionalNotes  sql.NullString `db:"additional_notes"`
	ResumeFileName   string         `db:"resume_file_name"`
	ResumeFileURL    string         `db:"resume_file_url"`
	Status           string         `db:"status"`
	Notes            sql.NullString `db:"notes"`
	ReviewedBy       sql.NullString `db:"reviewed_by"`
	ReviewedAt       *time.Time     `db:"reviewed_at"`
	SubmittedAt      time.Time      `db:"submitted_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

const selectColumns = `
	id, full_name, email, phone_number, linkedin_profile, portfolio_website,
	job_position, additional_notes, resume_file_name, resume_file_url, status,
	notes, reviewed_by, reviewed_at, submitted_at, updated_at
`

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() *application.AdminApplication {
	return &application.AdminApplication{
		Application: application.Application{
			ID:               kernel.ApplicationID(m.ID),
			FullName:         m.FullName,
			Email:            kernel.Email(m.Email),
			PhoneNumber:      m.PhoneNumber.String,
			LinkedinProfile:  m.LinkedinProfile.String,
			PortfolioWebsite: m.PortfolioWebsite.String,
			JobPosition:      kernel.JobPosition(m.JobPosition),
			AdditionalNotes:  m.AdditionalNotes.String,
			ResumeFileName:   m.ResumeFileName,
			ResumeFileURL:    kernel.FileURL(m.ResumeFileURL),
			Status:           application.Status(m.Status),
			SubmittedAt:      m.SubmittedAt,
			UpdatedAt:        m.UpdatedAt,
		},
		Notes:      m.Notes.String,
		ReviewedBy: m.ReviewedBy.String,
		ReviewedAt: m.ReviewedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(app *application.AdminApplication) *applicationModel {
	return &applicationModel{
		ID:               string(app.ID),
		FullName:         app.FullName,
		Email:            string(app.Email),
		PhoneNumber:      nullString(app.PhoneNumber),
		LinkedinProfile:  nullString(app.LinkedinProfile),
		PortfolioWebsite: nullString(app.PortfolioWebsite),
		JobPosition:      string(app.JobPosition),
		AdditionalNotes:  nullString(app.AdditionalNotes),
		ResumeFileName:   app.ResumeFileName,
		ResumeFileURL:    string(app.ResumeFileURL),
		Status:           string(app.Status),
		Notes:            nullString(app.Notes),
		ReviewedBy:       nullString(app.ReviewedBy),
		ReviewedAt:       app.ReviewedAt,
		SubmittedAt:      app.SubmittedAt,
		UpdatedAt:        app.UpdatedAt,
	}
}

// likeEscaper makes the search a literal substring for ILIKE
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// whereClause renders the filters as SQL with positional arguments
func whereClause(f application.Filters) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		conds = append(conds, "status = "+arg(string(f.Status)))
	}
	if f.JobPosition != "" {
		conds = append(conds, "job_position = "+arg(f.JobPosition))
	}
	if f.Search != "" {
		p := arg("%" + likeEscaper.Replace(f.Search) + "%")
		conds = append(conds, fmt.Sprintf(`(full_name ILIKE %[1]s ESCAPE '\' OR email ILIKE %[1]s ESCAPE '\' OR job_position ILIKE %[1]s ESCAPE '\')`, p))
	}
	if f.DateFrom != nil {
		conds = append(conds, "submitted_at >= "+arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		conds = append(conds, "submitted_at <= "+arg(*f.DateTo))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.AdminApplication) error {
	model := fromEntity(app)

	query := `
		INSERT INTO applications (
			id, full_name, email, phone_number, linkedin_profile, portfolio_website,
			job_position, additional_notes, resume_file_name, resume_file_url, status,
			notes, reviewed_by, reviewed_at, submitted_at, updated_at
		) VALUES (
			:id, :full_name, :email, :phone_number, :linkedin_profile, :portfolio_website,
			:job_position, :additional_notes, :resume_file_name, :resume_file_url, :status,
			:notes, :reviewed_by, :reviewed_at, :submitted_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return application.ErrApplicationExists().WithDetail("id", app.ID)
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// Update updates the mutable review fields of an existing application
func (r *PostgresApplicationRepository) Update(ctx context.Context, app *application.AdminApplication) error {
	model := fromEntity(app)

	query := `
		UPDATE applications SET
			status = :status,
			notes = :notes,
			reviewed_by = :reviewed_by,
			reviewed_at = :reviewed_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("id", app.ID)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.AdminApplication, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE id = $1`

	var model applicationModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("id", id)
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}

	return model.toEntity(), nil
}

// Delete deletes an application by ID
func (r *PostgresApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	query := `DELETE FROM applications WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("id", id)
	}

	return nil
}

// Exists checks if an application exists by ID
func (r *PostgresApplicationRepository) Exists(ctx context.Context, id kernel.ApplicationID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, string(id)); err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return exists, nil
}

// List filters in SQL and returns one page, oldest submission first
func (r *PostgresApplicationRepository) List(ctx context.Context, filters application.Filters, pagination kernel.PaginationOptions) (*kernel.Paginated[application.AdminApplication], error) {
	pagination = pagination.Normalize()
	where, args := whereClause(filters)

	// Count total
	var total int
	countQuery := `SELECT COUNT(*) FROM applications` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	// Pages past the end skip the query
	var models []applicationModel
	if start, end := pagination.Bounds(total); start < end {
		query := fmt.Sprintf(`SELECT %s FROM applications%s ORDER BY submitted_at ASC, id ASC LIMIT $%d OFFSET $%d`,
			selectColumns, where, len(args)+1, len(args)+2)

		err := r.db.SelectContext(ctx, &models, query, append(args, end-start, start)...)
		if err != nil {
			return nil, fmt.Errorf("failed to list applications: %w", err)
		}
	}

	page := kernel.NewPaginated(toEntities(models), pagination.Page, pagination.PageSize, total)
	return &page, nil
}

// ListAll returns every application matching the filters
func (r *PostgresApplicationRepository) ListAll(ctx context.Context, filters application.Filters) ([]application.AdminApplication, error) {
	where, args := whereClause(filters)
	query := `SELECT ` + selectColumns + ` FROM applications` + where + ` ORDER BY submitted_at ASC, id ASC`

	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list all applications: %w", err)
	}
	return toEntities(models), nil
}

func toEntities(models []applicationModel) []application.AdminApplication {
	entities := make([]application.AdminApplication, 0, len(models))
	for i := range models {
		entities = append(entities, *models[i].toEntity())
	}
	return entities
}
