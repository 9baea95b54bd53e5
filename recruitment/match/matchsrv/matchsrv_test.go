package matchsrv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchhire/matchhire/internal/ai/analyzer"
	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/job"
	"github.com/matchhire/matchhire/recruitment/match"
)

// ============================================================================
// Stubs
// ============================================================================

type stubEmbedder struct {
	vectors [][]float32
	err     error
	texts   []string
}

func (s *stubEmbedder) GenerateBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.texts = texts
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors, nil
}

type stubAssessor struct {
	assessment *analyzer.Assessment
	err        error
	called     bool
}

func (s *stubAssessor) Assess(_ context.Context, _, _ string) (*analyzer.Assessment, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.assessment, nil
}

type stubMatchRepo struct {
	created *match.MatchAnalysis
	err     error
}

func (s *stubMatchRepo) Create(_ context.Context, analysis *match.MatchAnalysis) error {
	if s.err != nil {
		return s.err
	}
	s.created = analysis
	return nil
}

func (s *stubMatchRepo) GetByCandidateID(_ context.Context, _ kernel.CandidateID) (*match.MatchAnalysis, error) {
	if s.created == nil {
		return nil, match.ErrAnalysisNotFound()
	}
	return s.created, nil
}

func (s *stubMatchRepo) DeleteByCandidateID(_ context.Context, _ kernel.CandidateID) error {
	s.created = nil
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func testJob() *job.JobPosting {
	return &job.JobPosting{
		ID:           kernel.NewJobID("job-1"),
		Title:        "Backend Engineer",
		Description:  "Build services",
		Requirements: "Go, PostgreSQL",
	}
}

func testCandidate() *candidate.Candidate {
	return &candidate.Candidate{
		ID:      kernel.NewCandidateID("cand-1"),
		Name:    "Dana Smith",
		Summary: "Backend developer",
		Skills:  []string{"Go", "PostgreSQL"},
	}
}

func testAssessment() *analyzer.Assessment {
	return &analyzer.Assessment{
		OverallScore:     70,
		SkillsScore:      85,
		ExperienceScore:  60,
		EducationScore:   75,
		IndustryScore:    50,
		Strengths:        []string{"strong Go background"},
		Weaknesses:       []string{"limited cloud experience"},
		Recommendation:   "Interview",
		DetailedAnalysis: "Solid backend profile.",
		Passed:           true,
	}
}

// ============================================================================
// Tests
// ============================================================================

func TestAnalyzeBlendsScoresAndSetsEmbedding(t *testing.T) {
	// Identical vectors: similarity 1.0, geometric score 100.
	embedder := &stubEmbedder{vectors: [][]float32{{1, 0, 0}, {1, 0, 0}}}
	assessor := &stubAssessor{assessment: testAssessment()}
	svc := NewMatchService(embedder, assessor, &stubMatchRepo{})

	cand := testCandidate()
	analysis, err := svc.Analyze(context.Background(), testJob(), cand)
	require.NoError(t, err)

	// Geometric 100 beats qualitative 70.
	assert.Equal(t, 100, analysis.MatchScore)
	assert.Equal(t, 85, analysis.SkillsScore)
	assert.Equal(t, 60, analysis.ExperienceScore)
	assert.Equal(t, 75, analysis.EducationScore)
	assert.Equal(t, 50, analysis.IndustryScore)
	assert.True(t, analysis.Passed)
	assert.Equal(t, kernel.NewCandidateID("cand-1"), analysis.CandidateID)
	assert.Equal(t, kernel.NewJobID("job-1"), analysis.JobID)
	assert.False(t, analysis.ID.IsEmpty())

	// The candidate vector from the batch call lands on the entity.
	assert.Equal(t, kernel.EmbeddingVector{1, 0, 0}, cand.Embedding)
}

func TestAnalyzeQualitativeWinsWhenHigher(t *testing.T) {
	// Orthogonal vectors: similarity 0, geometric score 50.
	embedder := &stubEmbedder{vectors: [][]float32{{1, 0}, {0, 1}}}
	assessor := &stubAssessor{assessment: testAssessment()}
	svc := NewMatchService(embedder, assessor, &stubMatchRepo{})

	analysis, err := svc.Analyze(context.Background(), testJob(), testCandidate())
	require.NoError(t, err)

	assert.Equal(t, 70, analysis.MatchScore)
}

func TestAnalyzeEmbedsBothTextsInOneCall(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float32{{1, 0}, {0, 1}}}
	assessor := &stubAssessor{assessment: testAssessment()}
	svc := NewMatchService(embedder, assessor, &stubMatchRepo{})

	posting := testJob()
	cand := testCandidate()
	_, err := svc.Analyze(context.Background(), posting, cand)
	require.NoError(t, err)

	require.Len(t, embedder.texts, 2)
	assert.Equal(t, posting.EmbeddingText(), embedder.texts[0])
	assert.Equal(t, cand.EmbeddingText(), embedder.texts[1])
}

func TestAnalyzeClampsAssessmentScores(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float32{{1, 0}, {0, 1}}}
	assessment := testAssessment()
	assessment.OverallScore = 130
	assessment.SkillsScore = -10
	assessor := &stubAssessor{assessment: assessment}
	svc := NewMatchService(embedder, assessor, &stubMatchRepo{})

	analysis, err := svc.Analyze(context.Background(), testJob(), testCandidate())
	require.NoError(t, err)

	assert.Equal(t, 100, analysis.MatchScore)
	assert.Equal(t, 0, analysis.SkillsScore)
}

func TestAnalyzeEmbeddingFailureAbortsPipeline(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("rate limited")}
	assessor := &stubAssessor{assessment: testAssessment()}
	svc := NewMatchService(embedder, assessor, &stubMatchRepo{})

	_, err := svc.Analyze(context.Background(), testJob(), testCandidate())
	require.Error(t, err)
	assert.False(t, assessor.called)
}

func TestAnalyzeAssessmentFailureAbortsPipeline(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float32{{1, 0}, {0, 1}}}
	assessor := &stubAssessor{err: errors.New("model unavailable")}
	repo := &stubMatchRepo{}
	svc := NewMatchService(embedder, assessor, repo)

	_, err := svc.Analyze(context.Background(), testJob(), testCandidate())
	require.Error(t, err)
	assert.Nil(t, repo.created)
}

func TestSavePersistsAnalysis(t *testing.T) {
	repo := &stubMatchRepo{}
	svc := NewMatchService(&stubEmbedder{}, &stubAssessor{}, repo)

	analysis := &match.MatchAnalysis{
		ID:          kernel.GenerateAnalysisID(),
		CandidateID: kernel.NewCandidateID("cand-1"),
	}
	require.NoError(t, svc.Save(context.Background(), analysis))
	assert.Equal(t, analysis, repo.created)

	got, err := svc.GetByCandidateID(context.Background(), analysis.CandidateID)
	require.NoError(t, err)
	assert.Equal(t, analysis, got)
}
