package matchsrv

import (
	"context"
	"time"

	"github.com/matchhire/matchhire/internal/ai/analyzer"
	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/pkg/logx"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/job"
	"github.com/matchhire/matchhire/recruitment/match"
)

const (
	embeddingTimeout  = 30 * time.Second
	assessmentTimeout = 90 * time.Second
)

// BatchEmbedder produces embedding vectors for multiple texts in one call
type BatchEmbedder interface {
	GenerateBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Assessor produces a qualitative fit assessment of a candidate for a job
type Assessor interface {
	Assess(ctx context.Context, jobText, candidateText string) (*analyzer.Assessment, error)
}

// MatchService runs the scoring pipeline for one candidate against one
// job posting
type MatchService struct {
	embedder BatchEmbedder
	assessor Assessor
	repo     match.Repository
}

// NewMatchService creates a new instance of the match service
func NewMatchService(
	embedder BatchEmbedder,
	assessor Assessor,
	repo match.Repository,
) *MatchService {
	return &MatchService{
		embedder: embedder,
		assessor: assessor,
		repo:     repo,
	}
}

// Analyze computes the full match analysis for a candidate against a
// posting without persisting anything. Both canonical texts are embedded
// in a single batch call; the candidate entity receives its embedding as
// part of the result. Any collaborator failure aborts the whole analysis.
func (s *MatchService) Analyze(ctx context.Context, posting *job.JobPosting, cand *candidate.Candidate) (*match.MatchAnalysis, error) {
	jobText := posting.EmbeddingText()
	candidateText := cand.EmbeddingText()

	embedCtx, cancel := context.WithTimeout(ctx, embeddingTimeout)
	defer cancel()

	vectors, err := s.embedder.GenerateBatch(embedCtx, []string{jobText, candidateText})
	if err != nil {
		return nil, match.ErrEmbeddingFailed().WithDetail("reason", err.Error())
	}
	jobVector, candidateVector := vectors[0], vectors[1]
	cand.Embedding = kernel.EmbeddingVector(candidateVector)

	similarity, err := match.CosineSimilarity(jobVector, candidateVector)
	if err != nil {
		return nil, match.ErrScoringFailed().WithDetail("reason", err.Error())
	}
	geometric := match.SimilarityToScore(similarity)

	assessCtx, cancel := context.WithTimeout(ctx, assessmentTimeout)
	defer cancel()

	assessment, err := s.assessor.Assess(assessCtx, jobText, candidateText)
	if err != nil {
		return nil, match.ErrAssessmentFailed().WithDetail("reason", err.Error())
	}

	analysis := &match.MatchAnalysis{
		ID:               kernel.GenerateAnalysisID(),
		CandidateID:      cand.ID,
		JobID:            posting.ID,
		MatchScore:       match.BlendScores(assessment.OverallScore, geometric),
		SkillsScore:      assessment.SkillsScore,
		ExperienceScore:  assessment.ExperienceScore,
		EducationScore:   assessment.EducationScore,
		IndustryScore:    assessment.IndustryScore,
		Strengths:        assessment.Strengths,
		Weaknesses:       assessment.Weaknesses,
		Recommendation:   assessment.Recommendation,
		DetailedAnalysis: assessment.DetailedAnalysis,
		Passed:           assessment.Passed,
		CreatedAt:        time.Now().UTC(),
	}
	analysis.ClampScores()

	logx.Debugf("Scored candidate %s against job %s: geometric=%d qualitative=%d final=%d",
		cand.ID.String(), posting.ID.String(), geometric, assessment.OverallScore, analysis.MatchScore)

	return analysis, nil
}

// Save persists a computed analysis
func (s *MatchService) Save(ctx context.Context, analysis *match.MatchAnalysis) error {
	return s.repo.Create(ctx, analysis)
}

// GetByCandidateID retrieves the stored analysis for a candidate
func (s *MatchService) GetByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*match.MatchAnalysis, error) {
	return s.repo.GetByCandidateID(ctx, candidateID)
}
