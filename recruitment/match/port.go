package match

import (
	"context"

	"github.com/matchhire/matchhire/pkg/kernel"
)

type Repository interface {
	// Create stores a new analysis
	Create(ctx context.Context, analysis *MatchAnalysis) error

	// GetByCandidateID retrieves the analysis for a candidate
	GetByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*MatchAnalysis, error)

	// DeleteByCandidateID removes the analysis for a candidate, if any
	DeleteByCandidateID(ctx context.Context, candidateID kernel.CandidateID) error
}
