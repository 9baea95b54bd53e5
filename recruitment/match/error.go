package match

import (
	"net/http"

	"github.com/matchhire/matchhire/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("MATCH")

// Error codes
var (
	CodeAnalysisNotFound   = ErrRegistry.Register("ANALYSIS_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Match analysis not found")
	CodeEmbeddingFailed    = ErrRegistry.Register("EMBEDDING_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to generate embeddings for matching")
	CodeAssessmentFailed   = ErrRegistry.Register("ASSESSMENT_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to assess candidate against job posting")
	CodeScoringFailed      = ErrRegistry.Register("SCORING_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to compute similarity score")
	CodePersistenceFailure = ErrRegistry.Register("PERSISTENCE_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "Failed to store match analysis")
)

func ErrAnalysisNotFound() *errx.Error {
	return ErrRegistry.New(CodeAnalysisNotFound)
}

// IsAnalysisNotFound reports whether err means the candidate simply has
// no stored analysis, as opposed to a failed lookup
func IsAnalysisNotFound(err error) bool {
	e, ok := err.(*errx.Error)
	return ok && e.Code == CodeAnalysisNotFound
}

func ErrEmbeddingFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbeddingFailed)
}

func ErrAssessmentFailed() *errx.Error {
	return ErrRegistry.New(CodeAssessmentFailed)
}

func ErrScoringFailed() *errx.Error {
	return ErrRegistry.New(CodeScoringFailed)
}

func ErrPersistenceFailure(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodePersistenceFailure, cause)
}
