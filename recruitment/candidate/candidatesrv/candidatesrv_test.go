package candidatesrv

import (
	"context"
	"errors"
	"fmt"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchhire/matchhire/internal/ai/extractor"
	"github.com/matchhire/matchhire/internal/textextract"
	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/job"
	"github.com/matchhire/matchhire/recruitment/match"
)

// ============================================================================
// Stubs
// ============================================================================

type stubCandidateRepo struct {
	candidates map[kernel.CandidateID]*candidate.Candidate
	listItems  []candidate.CandidateWithAnalysis
	listTotal  int
	listReq    candidate.ListCandidatesRequest
	createErr  error
	deleted    []kernel.CandidateID
}

func newStubCandidateRepo() *stubCandidateRepo {
	return &stubCandidateRepo{candidates: map[kernel.CandidateID]*candidate.Candidate{}}
}

func (s *stubCandidateRepo) Create(_ context.Context, cand *candidate.Candidate) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.candidates[cand.ID] = cand
	return nil
}

func (s *stubCandidateRepo) GetByID(_ context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	cand, ok := s.candidates[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	return cand, nil
}

func (s *stubCandidateRepo) List(_ context.Context, req candidate.ListCandidatesRequest) ([]candidate.CandidateWithAnalysis, int, error) {
	s.listReq = req
	return s.listItems, s.listTotal, nil
}

func (s *stubCandidateRepo) UpdateStatus(_ context.Context, id kernel.CandidateID, status candidate.Status) error {
	cand, ok := s.candidates[id]
	if !ok {
		return candidate.ErrCandidateNotFound()
	}
	cand.Status = status
	return nil
}

func (s *stubCandidateRepo) UpdateNotes(_ context.Context, id kernel.CandidateID, notes string) error {
	cand, ok := s.candidates[id]
	if !ok {
		return candidate.ErrCandidateNotFound()
	}
	cand.Notes = notes
	return nil
}

func (s *stubCandidateRepo) Delete(_ context.Context, id kernel.CandidateID) error {
	s.deleted = append(s.deleted, id)
	delete(s.candidates, id)
	return nil
}

type stubJobProvider struct {
	active *job.JobPosting
	byID   map[kernel.JobID]*job.JobPosting
}

func (s *stubJobProvider) GetActive(_ context.Context) (*job.JobPosting, error) {
	if s.active == nil {
		return nil, job.ErrNoActiveJob()
	}
	return s.active, nil
}

func (s *stubJobProvider) GetByID(_ context.Context, id kernel.JobID) (*job.JobPosting, error) {
	posting, ok := s.byID[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return posting, nil
}

type stubMatcher struct {
	analyses   map[kernel.CandidateID]*match.MatchAnalysis
	analyzeErr error
	saveErr    error
	getErr     error
}

func newStubMatcher() *stubMatcher {
	return &stubMatcher{analyses: map[kernel.CandidateID]*match.MatchAnalysis{}}
}

func (s *stubMatcher) Analyze(_ context.Context, posting *job.JobPosting, cand *candidate.Candidate) (*match.MatchAnalysis, error) {
	if s.analyzeErr != nil {
		return nil, s.analyzeErr
	}
	cand.Embedding = kernel.EmbeddingVector{0.1, 0.2}
	return &match.MatchAnalysis{
		ID:          kernel.GenerateAnalysisID(),
		CandidateID: cand.ID,
		JobID:       posting.ID,
		MatchScore:  75,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (s *stubMatcher) Save(_ context.Context, analysis *match.MatchAnalysis) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.analyses[analysis.CandidateID] = analysis
	return nil
}

func (s *stubMatcher) GetByCandidateID(_ context.Context, id kernel.CandidateID) (*match.MatchAnalysis, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	analysis, ok := s.analyses[id]
	if !ok {
		return nil, match.ErrAnalysisNotFound()
	}
	return analysis, nil
}

type stubResumeExtractor struct {
	failFor map[string]error // keyed by resume text
	calls   int
}

func (s *stubResumeExtractor) ExtractResume(_ context.Context, text string) (*extractor.ResumeData, error) {
	s.calls++
	if err, ok := s.failFor[text]; ok {
		return nil, err
	}
	return &extractor.ResumeData{
		Name:   "Candidate From " + text,
		Email:  "candidate@example.com",
		Skills: []string{"Go"},
	}, nil
}

type stubTextExtractor struct{}

func (stubTextExtractor) DetectFileType(fileName, contentType string) (textextract.FileType, error) {
	return textextract.DetectFileType(fileName, contentType)
}

func (stubTextExtractor) ExtractText(data []byte, _ textextract.FileType) (string, error) {
	return string(data), nil
}

// memoryFS tracks writes and deletes so tests can assert temp cleanup
type memoryFS struct {
	files   map[string][]byte
	deleted []string
}

func newMemoryFS() *memoryFS {
	return &memoryFS{files: map[string][]byte{}}
}

func (m *memoryFS) ReadFile(_ context.Context, p string) ([]byte, error) {
	data, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", p)
	}
	return data, nil
}

func (m *memoryFS) WriteFile(_ context.Context, p string, data []byte) error {
	m.files[p] = data
	return nil
}

func (m *memoryFS) DeleteFile(_ context.Context, p string) error {
	delete(m.files, p)
	m.deleted = append(m.deleted, p)
	return nil
}

func (m *memoryFS) Join(parts ...string) string {
	return path.Join(parts...)
}

// ============================================================================
// Fixtures
// ============================================================================

func activePosting() *job.JobPosting {
	return &job.JobPosting{
		ID:       kernel.NewJobID("job-1"),
		Title:    "Backend Engineer",
		IsActive: true,
	}
}

func newTestService(repo *stubCandidateRepo, matcher *stubMatcher, resumes *stubResumeExtractor, staging, storage *memoryFS) *CandidateService {
	return NewCandidateService(
		repo,
		&stubJobProvider{active: activePosting()},
		matcher,
		resumes,
		stubTextExtractor{},
		staging,
		storage,
	)
}

func pdfFile(name, content string) candidate.UploadFile {
	return candidate.UploadFile{
		FileName:    name,
		ContentType: "application/pdf",
		Data:        []byte(content),
	}
}

// ============================================================================
// Tests
// ============================================================================

func TestBulkUploadIsolatesPerFileFailures(t *testing.T) {
	repo := newStubCandidateRepo()
	matcher := newStubMatcher()
	resumes := &stubResumeExtractor{failFor: map[string]error{
		"resume two": errors.New("unreadable resume"),
	}}
	staging := newMemoryFS()
	storage := newMemoryFS()
	svc := newTestService(repo, matcher, resumes, staging, storage)

	resp, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{
		Files: []candidate.UploadFile{
			pdfFile("one.pdf", "resume one"),
			pdfFile("two.pdf", "resume two"),
			pdfFile("three.pdf", "resume three"),
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "two.pdf", resp.Errors[0].FileName)
	assert.Contains(t, resp.Errors[0].Error, "resume fields")

	// Submission order is preserved among the successes.
	assert.Equal(t, "Candidate From resume one", resp.Results[0].Name)
	assert.Equal(t, "Candidate From resume three", resp.Results[1].Name)

	// Every staged temp file is removed, including the failed one.
	assert.Empty(t, staging.files)
	assert.Len(t, staging.deleted, 3)

	// Both successful candidates got an analysis.
	assert.Len(t, repo.candidates, 2)
	assert.Len(t, matcher.analyses, 2)
}

func TestBulkUploadRejectsOversizedBatch(t *testing.T) {
	svc := newTestService(newStubCandidateRepo(), newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	files := make([]candidate.UploadFile, MaxBatchSize+1)
	for i := range files {
		files[i] = pdfFile(fmt.Sprintf("r%d.pdf", i), "text")
	}

	_, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{Files: files})
	require.Error(t, err)
}

func TestBulkUploadRejectsOversizedFileWithoutStoppingBatch(t *testing.T) {
	repo := newStubCandidateRepo()
	staging := newMemoryFS()
	svc := newTestService(repo, newStubMatcher(), &stubResumeExtractor{}, staging, newMemoryFS())

	big := candidate.UploadFile{
		FileName:    "big.pdf",
		ContentType: "application/pdf",
		Data:        make([]byte, MaxFileSize+1),
	}

	resp, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{
		Files: []candidate.UploadFile{big, pdfFile("ok.pdf", "resume ok")},
	})
	require.NoError(t, err)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "big.pdf", resp.Errors[0].FileName)
	require.Len(t, resp.Results, 1)
	assert.Len(t, repo.candidates, 1)
}

func TestBulkUploadRejectsPlainTextResume(t *testing.T) {
	svc := newTestService(newStubCandidateRepo(), newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	resp, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{
		Files: []candidate.UploadFile{
			{FileName: "resume.txt", ContentType: "text/plain", Data: []byte("plain text")},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Error, "PDF or DOCX")
}

func TestBulkUploadRollsBackCandidateWhenAnalysisPersistFails(t *testing.T) {
	repo := newStubCandidateRepo()
	matcher := newStubMatcher()
	matcher.saveErr = errors.New("db down")
	staging := newMemoryFS()
	svc := newTestService(repo, matcher, &stubResumeExtractor{}, staging, newMemoryFS())

	resp, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{
		Files: []candidate.UploadFile{pdfFile("one.pdf", "resume one")},
	})
	require.NoError(t, err)

	require.Len(t, resp.Errors, 1)
	assert.Empty(t, resp.Results)
	assert.Empty(t, repo.candidates)
	require.Len(t, repo.deleted, 1)
	assert.Empty(t, staging.files)
}

func TestBulkUploadAnalyzeFailureLeavesNoRecords(t *testing.T) {
	repo := newStubCandidateRepo()
	matcher := newStubMatcher()
	matcher.analyzeErr = match.ErrAssessmentFailed()
	svc := newTestService(repo, matcher, &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	resp, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{
		Files: []candidate.UploadFile{pdfFile("one.pdf", "resume one")},
	})
	require.NoError(t, err)

	require.Len(t, resp.Errors, 1)
	assert.Empty(t, repo.candidates)
	assert.Empty(t, repo.deleted)
}

func TestBulkUploadArchivesSourceFile(t *testing.T) {
	repo := newStubCandidateRepo()
	storage := newMemoryFS()
	svc := newTestService(repo, newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), storage)

	resp, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{
		Files: []candidate.UploadFile{pdfFile("one.pdf", "resume one")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	require.Len(t, storage.files, 1)
	for p, data := range storage.files {
		assert.Contains(t, p, "resumes/")
		assert.Contains(t, p, "one.pdf")
		assert.Equal(t, []byte("resume one"), data)
	}
}

func TestBulkUploadKeepsRawResumeText(t *testing.T) {
	repo := newStubCandidateRepo()
	svc := newTestService(repo, newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	resp, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{
		Files: []candidate.UploadFile{pdfFile("one.pdf", "resume one")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	require.Len(t, repo.candidates, 1)
	for _, cand := range repo.candidates {
		assert.Equal(t, "resume one", cand.RawText)
	}
}

func TestGetCandidateDistinguishesMissingAnalysisFromLookupFailure(t *testing.T) {
	repo := newStubCandidateRepo()
	id := kernel.NewCandidateID("cand-1")
	repo.candidates[id] = &candidate.Candidate{ID: id, Name: "Dana Smith"}
	matcher := newStubMatcher()
	svc := newTestService(repo, matcher, &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	// No stored analysis: the candidate is still presentable.
	resp, err := svc.GetCandidateByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, resp.Analysis)

	// A failing lookup must not read as a candidate without analysis.
	matcher.getErr = errors.New("connection refused")
	_, err = svc.GetCandidateByID(context.Background(), id)
	require.Error(t, err)
}

func TestListCandidatesHasMore(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		limit   int
		total   int
		hasMore bool
	}{
		{"first of many", 1, 10, 25, true},
		{"middle page", 2, 10, 25, true},
		{"last partial page", 3, 10, 25, false},
		{"exact fit", 2, 10, 20, false},
		{"empty", 1, 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubCandidateRepo()
			repo.listTotal = tt.total
			svc := newTestService(repo, newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

			resp, err := svc.ListCandidates(context.Background(), candidate.ListCandidatesRequest{
				Page:  tt.page,
				Limit: tt.limit,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.hasMore, resp.HasMore)
			assert.Equal(t, tt.total, resp.Total)
		})
	}
}

func TestListCandidatesAppliesPagingDefaults(t *testing.T) {
	repo := newStubCandidateRepo()
	svc := newTestService(repo, newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	_, err := svc.ListCandidates(context.Background(), candidate.ListCandidatesRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listReq.Page)
	assert.Equal(t, 10, repo.listReq.Limit)
}

func TestListCandidatesRejectsUnknownStatusFilter(t *testing.T) {
	svc := newTestService(newStubCandidateRepo(), newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	_, err := svc.ListCandidates(context.Background(), candidate.ListCandidatesRequest{Status: "archived"})
	require.Error(t, err)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	repo := newStubCandidateRepo()
	id := kernel.NewCandidateID("cand-1")
	repo.candidates[id] = &candidate.Candidate{ID: id, Status: candidate.StatusPending}
	svc := newTestService(repo, newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	_, err := svc.UpdateStatus(context.Background(), id, candidate.UpdateStatusRequest{Status: "archived"})
	require.Error(t, err)

	// Stored value stays untouched.
	assert.Equal(t, candidate.StatusPending, repo.candidates[id].Status)
}

func TestUpdateStatusAppliesValidValue(t *testing.T) {
	repo := newStubCandidateRepo()
	id := kernel.NewCandidateID("cand-1")
	repo.candidates[id] = &candidate.Candidate{ID: id, Status: candidate.StatusPending}
	svc := newTestService(repo, newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	resp, err := svc.UpdateStatus(context.Background(), id, candidate.UpdateStatusRequest{Status: "shortlisted"})
	require.NoError(t, err)
	assert.Equal(t, candidate.StatusShortlisted, resp.Status)
}

func TestUpdateNotesBoundsLength(t *testing.T) {
	repo := newStubCandidateRepo()
	id := kernel.NewCandidateID("cand-1")
	repo.candidates[id] = &candidate.Candidate{ID: id}
	svc := newTestService(repo, newStubMatcher(), &stubResumeExtractor{}, newMemoryFS(), newMemoryFS())

	long := make([]byte, candidate.MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := svc.UpdateNotes(context.Background(), id, candidate.UpdateNotesRequest{Notes: string(long)})
	require.Error(t, err)

	resp, err := svc.UpdateNotes(context.Background(), id, candidate.UpdateNotesRequest{Notes: "solid interview"})
	require.NoError(t, err)
	assert.Equal(t, "solid interview", resp.Notes)
}

func TestBulkUploadFailsWithoutTargetJob(t *testing.T) {
	svc := NewCandidateService(
		newStubCandidateRepo(),
		&stubJobProvider{}, // no active posting
		newStubMatcher(),
		&stubResumeExtractor{},
		stubTextExtractor{},
		newMemoryFS(),
		newMemoryFS(),
	)

	_, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{
		Files: []candidate.UploadFile{pdfFile("one.pdf", "resume one")},
	})
	require.Error(t, err)
}

func TestBulkUploadUsesRequestedJob(t *testing.T) {
	other := &job.JobPosting{ID: kernel.NewJobID("job-2"), Title: "Data Engineer"}
	matcher := newStubMatcher()
	svc := NewCandidateService(
		newStubCandidateRepo(),
		&stubJobProvider{
			active: activePosting(),
			byID:   map[kernel.JobID]*job.JobPosting{other.ID: other},
		},
		matcher,
		&stubResumeExtractor{},
		stubTextExtractor{},
		newMemoryFS(),
		newMemoryFS(),
	)

	resp, err := svc.BulkUpload(context.Background(), candidate.BulkUploadRequest{
		JobID: other.ID,
		Files: []candidate.UploadFile{pdfFile("one.pdf", "resume one")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.NotNil(t, resp.Results[0].Analysis)
	assert.Equal(t, other.ID, resp.Results[0].Analysis.JobID)
}
