package jobinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/job"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID             string          `db:"id"`
	Title          string          `db:"title"`
	Company        string          `db:"company"`
	Location       string          `db:"location"`
	SalaryRange    string          `db:"salary_range"`
	Description    string          `db:"description"`
	Requirements   string          `db:"requirements"`
	SourceFileName string          `db:"source_file_name"`
	IsActive       bool            `db:"is_active"`
	Embedding      pgvector.Vector `db:"embedding"`
	CreatedAt      time.Time       `db:"created_at"`
}

func (m *jobModel) toEntity() *job.JobPosting {
	return &job.JobPosting{
		ID:             kernel.JobID(m.ID),
		Title:          m.Title,
		Company:        m.Company,
		Location:       m.Location,
		SalaryRange:    m.SalaryRange,
		Description:    m.Description,
		Requirements:   m.Requirements,
		SourceFileName: m.SourceFileName,
		IsActive:       m.IsActive,
		Embedding:      kernel.EmbeddingVector(m.Embedding.Slice()),
		CreatedAt:      m.CreatedAt,
	}
}

func fromEntity(j *job.JobPosting) *jobModel {
	return &jobModel{
		ID:             string(j.ID),
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		SalaryRange:    j.SalaryRange,
		Description:    j.Description,
		Requirements:   j.Requirements,
		SourceFileName: j.SourceFileName,
		IsActive:       j.IsActive,
		Embedding:      pgvector.NewVector([]float32(j.Embedding)),
		CreatedAt:      j.CreatedAt,
	}
}

const jobColumns = `
	id, title, company, location, salary_range,
	description, requirements, source_file_name,
	is_active, embedding, created_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new posting; with activate it also deactivates every other
// posting inside the same transaction so the single-active invariant holds.
func (r *PostgresJobRepository) Create(ctx context.Context, posting *job.JobPosting, activate bool) error {
	model := fromEntity(posting)
	model.IsActive = activate

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if activate {
		if _, err := tx.ExecContext(ctx, `UPDATE job_postings SET is_active = FALSE WHERE is_active`); err != nil {
			return fmt.Errorf("failed to deactivate postings: %w", err)
		}
	}

	query := `
		INSERT INTO job_postings (
			id, title, company, location, salary_range,
			description, requirements, source_file_name,
			is_active, embedding, created_at
		) VALUES (
			:id, :title, :company, :location, :salary_range,
			:description, :requirements, :source_file_name,
			:is_active, :embedding, :created_at
		)
	`

	if _, err := tx.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return job.ErrJobAlreadyExists()
		}
		return fmt.Errorf("failed to create job posting: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit job creation: %w", err)
	}

	posting.IsActive = activate
	return nil
}

// GetByID retrieves a posting by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.JobPosting, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE id = $1`, jobColumns)

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, string(id)); err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}

	return model.toEntity(), nil
}

// GetActive retrieves the currently active posting
func (r *PostgresJobRepository) GetActive(ctx context.Context) (*job.JobPosting, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE is_active LIMIT 1`, jobColumns)

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrNoActiveJob()
		}
		return nil, fmt.Errorf("failed to get active job posting: %w", err)
	}

	return model.toEntity(), nil
}

// Activate atomically makes the given posting the only active one.
// Deactivation and activation run in one transaction; a concurrent reader
// never observes zero active postings after a successful call.
func (r *PostgresJobRepository) Activate(ctx context.Context, id kernel.JobID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE job_postings SET is_active = FALSE WHERE is_active AND id <> $1`, string(id)); err != nil {
		return fmt.Errorf("failed to deactivate postings: %w", err)
	}

	result, err := tx.ExecContext(ctx, `UPDATE job_postings SET is_active = TRUE WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to activate posting: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activation: %w", err)
	}

	return nil
}

// List retrieves postings with pagination, newest first
func (r *PostgresJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.JobPosting], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM job_postings`); err != nil {
		return nil, fmt.Errorf("failed to count job postings: %w", err)
	}

	offset := pagination.Offset()
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := fmt.Sprintf(`
		SELECT %s FROM job_postings
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, jobColumns)

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}

	entities := make([]job.JobPosting, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return &kernel.Paginated[job.JobPosting]{
		Items: entities,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(entities) == 0,
	}, nil
}

// Exists checks if a posting exists by ID
func (r *PostgresJobRepository) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM job_postings WHERE id = $1)`, string(id))
	if err != nil {
		return false, fmt.Errorf("failed to check job existence: %w", err)
	}
	return exists, nil
}
