package candidate

import (
	"context"

	"github.com/matchhire/matchhire/pkg/kernel"
)

type Repository interface {
	// Create stores a new candidate
	Create(ctx context.Context, cand *Candidate) error

	// GetByID retrieves a candidate by ID
	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)

	// List retrieves candidates matching the filters, joined with their
	// analyses. Order is match score DESC with unanalyzed candidates
	// last, then created_at DESC, then id DESC. Returns the page and the
	// total row count before paging.
	List(ctx context.Context, req ListCandidatesRequest) ([]CandidateWithAnalysis, int, error)

	// UpdateStatus sets the review status of a candidate
	UpdateStatus(ctx context.Context, id kernel.CandidateID, status Status) error

	// UpdateNotes replaces the recruiter notes of a candidate
	UpdateNotes(ctx context.Context, id kernel.CandidateID, notes string) error

	// Delete removes a candidate and, via the FK cascade, its analysis
	Delete(ctx context.Context, id kernel.CandidateID) error
}
