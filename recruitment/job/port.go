package job

import (
	"context"

	"github.com/matchhire/matchhire/pkg/kernel"
)

type Repository interface {
	// Create stores a new posting. When activate is true the insert and the
	// deactivation of every other posting happen in one transaction, so
	// exactly one posting is active afterwards.
	Create(ctx context.Context, posting *JobPosting, activate bool) error

	// GetByID retrieves a posting by ID
	GetByID(ctx context.Context, id kernel.JobID) (*JobPosting, error)

	// GetActive retrieves the currently active posting
	GetActive(ctx context.Context) (*JobPosting, error)

	// Activate atomically makes the given posting the only active one
	Activate(ctx context.Context, id kernel.JobID) error

	// List retrieves postings with pagination, newest first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[JobPosting], error)

	// Exists checks if a posting exists by ID
	Exists(ctx context.Context, id kernel.JobID) (bool, error)
}

// ActiveJobCache caches the active posting between activations
type ActiveJobCache interface {
	// Get returns the cached active posting, or nil on miss
	Get(ctx context.Context) (*JobPosting, error)

	// Set stores the active posting
	Set(ctx context.Context, posting *JobPosting) error

	// Invalidate drops the cached posting
	Invalidate(ctx context.Context) error
}
