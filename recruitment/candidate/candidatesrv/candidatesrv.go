package candidatesrv

import (
	"context"
	"time"

	"github.com/matchhire/matchhire/internal/ai/extractor"
	"github.com/matchhire/matchhire/internal/textextract"
	"github.com/matchhire/matchhire/pkg/errx"
	"github.com/matchhire/matchhire/pkg/fsx"
	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/pkg/logx"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/job"
	"github.com/matchhire/matchhire/recruitment/match"
)

const (
	// MaxBatchSize is the upload limit for one bulk request
	MaxBatchSize = 20

	// MaxFileSize is the upload limit for a single resume file
	MaxFileSize = 10 * 1024 * 1024
)

// ResumeExtractor derives structured candidate fields from raw text
type ResumeExtractor interface {
	ExtractResume(ctx context.Context, text string) (*extractor.ResumeData, error)
}

// TextExtractor converts uploaded document bytes to plain text
type TextExtractor interface {
	DetectFileType(fileName, contentType string) (textextract.FileType, error)
	ExtractText(data []byte, fileType textextract.FileType) (string, error)
}

// Matcher runs the scoring pipeline and manages stored analyses
type Matcher interface {
	Analyze(ctx context.Context, posting *job.JobPosting, cand *candidate.Candidate) (*match.MatchAnalysis, error)
	Save(ctx context.Context, analysis *match.MatchAnalysis) error
	GetByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*match.MatchAnalysis, error)
}

// JobProvider resolves the posting that uploaded resumes are matched against
type JobProvider interface {
	GetActive(ctx context.Context) (*job.JobPosting, error)
	GetByID(ctx context.Context, id kernel.JobID) (*job.JobPosting, error)
}

// CandidateService provides business operations for candidates
type CandidateService struct {
	candidateRepo candidate.Repository
	jobs          JobProvider
	matcher       Matcher
	extractor     ResumeExtractor
	text          TextExtractor
	staging       fsx.FileSystem
	storage       fsx.FileSystem
}

// NewCandidateService creates a new instance of the candidate service
func NewCandidateService(
	candidateRepo candidate.Repository,
	jobs JobProvider,
	matcher Matcher,
	resumeExtractor ResumeExtractor,
	text TextExtractor,
	staging fsx.FileSystem,
	storage fsx.FileSystem,
) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
		jobs:          jobs,
		matcher:       matcher,
		extractor:     resumeExtractor,
		text:          text,
		staging:       staging,
		storage:       storage,
	}
}

// BulkUpload processes resume files strictly in submission order. Each file
// runs the full pipeline on its own; a failure is recorded against that
// file and the batch moves on. Results and errors preserve input order.
func (s *CandidateService) BulkUpload(ctx context.Context, req candidate.BulkUploadRequest) (*candidate.BulkUploadResponse, error) {
	if len(req.Files) == 0 {
		return nil, candidate.ErrInvalidFile().WithDetail("reason", "no files provided")
	}
	if len(req.Files) > MaxBatchSize {
		return nil, candidate.ErrTooManyFiles().
			WithDetail("count", len(req.Files)).
			WithDetail("max", MaxBatchSize)
	}

	posting, err := s.resolveJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	resp := &candidate.BulkUploadResponse{
		Results: []candidate.CandidateResponse{},
		Errors:  []candidate.UploadError{},
	}

	for _, file := range req.Files {
		result, err := s.processFile(ctx, posting, file)
		if err != nil {
			logx.Warnf("Resume %s failed: %v", file.FileName, err)
			resp.Errors = append(resp.Errors, candidate.UploadError{
				FileName: file.FileName,
				Error:    err.Error(),
			})
			continue
		}
		resp.Results = append(resp.Results, *result)
	}

	logx.Infof("Bulk upload against job %s: %d processed, %d failed",
		posting.ID.String(), len(resp.Results), len(resp.Errors))

	return resp, nil
}

// processFile runs the whole pipeline for one resume. The candidate and its
// analysis are computed in full before either row is persisted, so a failure
// anywhere leaves no partial records behind. The staged temp file is removed
// on every exit path.
func (s *CandidateService) processFile(ctx context.Context, posting *job.JobPosting, file candidate.UploadFile) (*candidate.CandidateResponse, error) {
	if len(file.Data) == 0 {
		return nil, candidate.ErrInvalidFile().WithDetail("file_name", file.FileName)
	}
	if len(file.Data) > MaxFileSize {
		return nil, candidate.ErrFileTooLarge().
			WithDetail("file_name", file.FileName).
			WithDetail("size_bytes", len(file.Data))
	}

	fileType, err := s.text.DetectFileType(file.FileName, file.ContentType)
	if err != nil {
		return nil, candidate.ErrInvalidFile().
			WithDetail("file_name", file.FileName).
			WithDetail("reason", err.Error())
	}
	if fileType == textextract.FileTypeTXT {
		return nil, candidate.ErrInvalidFile().
			WithDetail("file_name", file.FileName).
			WithDetail("reason", "resumes must be PDF or DOCX")
	}

	candidateID := kernel.GenerateCandidateID()

	stagingPath := s.staging.Join("resumes", candidateID.String(), file.FileName)
	if err := s.staging.WriteFile(ctx, stagingPath, file.Data); err != nil {
		return nil, errx.Wrap(err, "failed to stage resume file", errx.TypeInternal)
	}
	defer func() {
		if err := s.staging.DeleteFile(ctx, stagingPath); err != nil {
			logx.Warnf("Failed to remove staged resume %s: %v", stagingPath, err)
		}
	}()

	data, err := s.staging.ReadFile(ctx, stagingPath)
	if err != nil {
		return nil, errx.Wrap(err, "failed to read staged resume file", errx.TypeInternal)
	}

	text, err := s.text.ExtractText(data, fileType)
	if err != nil {
		return nil, candidate.ErrTextExtractFailed().
			WithDetail("file_name", file.FileName).
			WithDetail("reason", err.Error())
	}

	resume, err := s.extractor.ExtractResume(ctx, text)
	if err != nil {
		return nil, candidate.ErrExtractionFailed().
			WithDetail("file_name", file.FileName).
			WithDetail("reason", err.Error())
	}

	now := time.Now().UTC()
	cand := &candidate.Candidate{
		ID:             candidateID,
		Name:           resume.Name,
		Email:          kernel.Email(resume.Email),
		Phone:          kernel.Phone(resume.Phone),
		Location:       resume.Location,
		Summary:        resume.Summary,
		Skills:         resume.Skills,
		Experience:     toExperience(resume.Experience),
		Education:      toEducation(resume.Education),
		Certifications: resume.Certifications,
		Status:         candidate.StatusPending,
		RawText:        text,
		SourceFileName: file.FileName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	analysis, err := s.matcher.Analyze(ctx, posting, cand)
	if err != nil {
		return nil, err
	}

	archivePath := kernel.StoragePath(s.storage.Join("resumes", candidateID.String(), file.FileName))
	cand.StoragePath = archivePath

	if err := s.candidateRepo.Create(ctx, cand); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, candidate.ErrPersistenceFailure(err)
	}

	if err := s.matcher.Save(ctx, analysis); err != nil {
		// No partial records: a candidate without its analysis would be
		// invisible to score filters and confusing on the dashboard.
		if delErr := s.candidateRepo.Delete(ctx, cand.ID); delErr != nil {
			logx.Errorf("Failed to roll back candidate %s after analysis failure: %v", cand.ID.String(), delErr)
		}
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, match.ErrPersistenceFailure(err)
	}

	if err := s.storage.WriteFile(ctx, string(archivePath), file.Data); err != nil {
		logx.Warnf("Failed to archive resume %s: %v", archivePath, err)
	}

	return candidate.ToCandidateResponse(cand, analysis), nil
}

// resolveJob returns the requested posting, or the active one when no
// posting was named
func (s *CandidateService) resolveJob(ctx context.Context, jobID kernel.JobID) (*job.JobPosting, error) {
	if jobID.IsEmpty() {
		return s.jobs.GetActive(ctx)
	}
	return s.jobs.GetByID(ctx, jobID)
}

// GetCandidateByID retrieves a candidate with its analysis
func (s *CandidateService) GetCandidateByID(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateResponse, error) {
	cand, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to get candidate", errx.TypeInternal)
	}

	analysis, err := s.matcher.GetByCandidateID(ctx, id)
	if err != nil {
		if !match.IsAnalysisNotFound(err) {
			if _, ok := err.(*errx.Error); ok {
				return nil, err
			}
			return nil, errx.Wrap(err, "failed to get candidate analysis", errx.TypeInternal)
		}
		// A candidate without an analysis is still presentable.
		analysis = nil
	}

	return candidate.ToCandidateResponse(cand, analysis), nil
}

// ListCandidates retrieves one dashboard page of candidates
func (s *CandidateService) ListCandidates(ctx context.Context, req candidate.ListCandidatesRequest) (*candidate.ListCandidatesResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Status != "" {
		if _, err := candidate.ParseStatus(req.Status); err != nil {
			return nil, err
		}
	}

	items, total, err := s.candidateRepo.List(ctx, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidates", errx.TypeInternal)
	}

	responses := make([]candidate.CandidateResponse, 0, len(items))
	for _, item := range items {
		cand := item.Candidate
		responses = append(responses, *candidate.ToCandidateResponse(&cand, item.Analysis))
	}

	offset := (req.Page - 1) * req.Limit

	return &candidate.ListCandidatesResponse{
		Candidates: responses,
		Total:      total,
		HasMore:    offset+req.Limit < total,
	}, nil
}

// UpdateStatus sets the review status of a candidate. Unknown statuses are
// rejected and the stored value stays untouched.
func (s *CandidateService) UpdateStatus(ctx context.Context, id kernel.CandidateID, req candidate.UpdateStatusRequest) (*candidate.CandidateResponse, error) {
	status, err := candidate.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if err := s.candidateRepo.UpdateStatus(ctx, id, status); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to update candidate status", errx.TypeInternal)
	}

	return s.GetCandidateByID(ctx, id)
}

// UpdateNotes replaces the recruiter notes of a candidate
func (s *CandidateService) UpdateNotes(ctx context.Context, id kernel.CandidateID, req candidate.UpdateNotesRequest) (*candidate.CandidateResponse, error) {
	if len(req.Notes) > candidate.MaxNotesLength {
		return nil, candidate.ErrNotesTooLong().
			WithDetail("length", len(req.Notes)).
			WithDetail("max", candidate.MaxNotesLength)
	}

	if err := s.candidateRepo.UpdateNotes(ctx, id, req.Notes); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to update candidate notes", errx.TypeInternal)
	}

	return s.GetCandidateByID(ctx, id)
}

// ============================================================================
// Helper Functions
// ============================================================================

func toExperience(entries []extractor.ExperienceEntry) []candidate.ExperienceEntry {
	result := make([]candidate.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, candidate.ExperienceEntry{
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}
	return result
}

func toEducation(entries []extractor.EducationEntry) []candidate.EducationEntry {
	result := make([]candidate.EducationEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, candidate.EducationEntry{
			Degree:         e.Degree,
			Institution:    e.Institution,
			Location:       e.Location,
			GraduationDate: e.GraduationDate,
		})
	}
	return result
}
