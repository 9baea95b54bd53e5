package reportsrv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/job"
	"github.com/matchhire/matchhire/recruitment/match"
	"github.com/matchhire/matchhire/recruitment/report"
)

// ============================================================================
// Stubs
// ============================================================================

type stubCandidateRepo struct {
	candidates map[kernel.CandidateID]*candidate.Candidate
}

func (s *stubCandidateRepo) Create(_ context.Context, _ *candidate.Candidate) error {
	return nil
}

func (s *stubCandidateRepo) GetByID(_ context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	cand, ok := s.candidates[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return cand, nil
}

func (s *stubCandidateRepo) List(_ context.Context, _ candidate.ListCandidatesRequest) ([]candidate.CandidateWithAnalysis, int, error) {
	return nil, 0, nil
}

func (s *stubCandidateRepo) UpdateStatus(_ context.Context, _ kernel.CandidateID, _ candidate.Status) error {
	return nil
}

func (s *stubCandidateRepo) UpdateNotes(_ context.Context, _ kernel.CandidateID, _ string) error {
	return nil
}

func (s *stubCandidateRepo) Delete(_ context.Context, _ kernel.CandidateID) error {
	return nil
}

type stubAnalyses struct {
	analysis *match.MatchAnalysis
	err      error
}

func (s *stubAnalyses) GetByCandidateID(_ context.Context, _ kernel.CandidateID) (*match.MatchAnalysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.analysis, nil
}

type stubJobs struct {
	posting *job.JobPosting
}

func (s *stubJobs) GetByID(_ context.Context, _ kernel.JobID) (*job.JobPosting, error) {
	if s.posting == nil {
		return nil, job.ErrJobNotFound()
	}
	return s.posting, nil
}

// ============================================================================
// Tests
// ============================================================================

func testCandidate(id kernel.CandidateID) *candidate.Candidate {
	return &candidate.Candidate{ID: id, Name: "Dana Smith"}
}

func TestBuildReportIncludesAnalysisSection(t *testing.T) {
	id := kernel.NewCandidateID("cand-1")
	svc := NewReportService(
		&stubCandidateRepo{candidates: map[kernel.CandidateID]*candidate.Candidate{id: testCandidate(id)}},
		&stubAnalyses{analysis: &match.MatchAnalysis{JobID: kernel.NewJobID("job-1"), MatchScore: 82}},
		&stubJobs{posting: &job.JobPosting{ID: kernel.NewJobID("job-1"), Title: "Backend Engineer", Company: "Acme"}},
	)

	doc, err := svc.BuildReport(context.Background(), id, report.Options{IncludeAnalysis: true})
	require.NoError(t, err)
	require.NotNil(t, doc.Analysis)
	assert.Equal(t, 82, doc.Analysis.MatchScore)
	assert.Equal(t, "Backend Engineer", doc.JobTitle)
}

func TestBuildReportDropsSectionWhenAnalysisMissing(t *testing.T) {
	id := kernel.NewCandidateID("cand-1")
	svc := NewReportService(
		&stubCandidateRepo{candidates: map[kernel.CandidateID]*candidate.Candidate{id: testCandidate(id)}},
		&stubAnalyses{err: match.ErrAnalysisNotFound()},
		&stubJobs{},
	)

	doc, err := svc.BuildReport(context.Background(), id, report.Options{IncludeAnalysis: true})
	require.NoError(t, err)
	assert.Nil(t, doc.Analysis)
}

func TestBuildReportPropagatesAnalysisLookupFailure(t *testing.T) {
	id := kernel.NewCandidateID("cand-1")
	svc := NewReportService(
		&stubCandidateRepo{candidates: map[kernel.CandidateID]*candidate.Candidate{id: testCandidate(id)}},
		&stubAnalyses{err: errors.New("connection refused")},
		&stubJobs{},
	)

	_, err := svc.BuildReport(context.Background(), id, report.Options{IncludeAnalysis: true})
	require.Error(t, err)
}

func TestBuildReportMissingCandidateErrors(t *testing.T) {
	svc := NewReportService(
		&stubCandidateRepo{candidates: map[kernel.CandidateID]*candidate.Candidate{}},
		&stubAnalyses{},
		&stubJobs{},
	)

	_, err := svc.BuildReport(context.Background(), kernel.NewCandidateID("missing"), report.Options{})
	require.Error(t, err)
}
