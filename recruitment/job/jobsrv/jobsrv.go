package jobsrv

import (
	"context"
	"time"

	"github.com/matchhire/matchhire/internal/ai/extractor"
	"github.com/matchhire/matchhire/internal/textextract"
	"github.com/matchhire/matchhire/pkg/errx"
	"github.com/matchhire/matchhire/pkg/fsx"
	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/pkg/logx"
	"github.com/matchhire/matchhire/recruitment/job"
)

// MaxFileSize is the upload limit for a single job description file
const MaxFileSize = 10 * 1024 * 1024

// FieldExtractor derives structured posting fields from raw text
type FieldExtractor interface {
	ExtractJob(ctx context.Context, text string) (*extractor.JobData, error)
}

// EmbeddingGenerator produces the posting vector used for similarity scoring
type EmbeddingGenerator interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// JobService provides business operations for job postings
type JobService struct {
	jobRepo   job.Repository
	cache     job.ActiveJobCache
	extractor FieldExtractor
	embedder  EmbeddingGenerator
	storage   fsx.FileSystem
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	cache job.ActiveJobCache,
	fieldExtractor FieldExtractor,
	embedder EmbeddingGenerator,
	storage fsx.FileSystem,
) *JobService {
	return &JobService{
		jobRepo:   jobRepo,
		cache:     cache,
		extractor: fieldExtractor,
		embedder:  embedder,
		storage:   storage,
	}
}

// UploadJob runs the full ingestion pipeline for one job description file:
// text extraction, field extraction, embedding, then a transactional store
// that also makes the new posting the active one.
func (s *JobService) UploadJob(ctx context.Context, req job.UploadJobRequest) (*job.JobResponse, error) {
	if len(req.Data) == 0 {
		return nil, job.ErrInvalidFile().WithDetail("file_name", req.FileName)
	}
	if len(req.Data) > MaxFileSize {
		return nil, job.ErrFileTooLarge().
			WithDetail("file_name", req.FileName).
			WithDetail("size_bytes", len(req.Data))
	}

	fileType, err := textextract.DetectFileType(req.FileName, req.ContentType)
	if err != nil {
		return nil, job.ErrInvalidFile().
			WithDetail("file_name", req.FileName).
			WithDetail("reason", err.Error())
	}

	text, err := textextract.ExtractText(req.Data, fileType)
	if err != nil {
		return nil, job.ErrTextExtractFailed().
			WithDetail("file_name", req.FileName).
			WithDetail("reason", err.Error())
	}

	data, err := s.extractor.ExtractJob(ctx, text)
	if err != nil {
		return nil, job.ErrExtractionFailed().
			WithDetail("file_name", req.FileName).
			WithDetail("reason", err.Error())
	}

	posting := &job.JobPosting{
		ID:             kernel.GenerateJobID(),
		Title:          data.Title,
		Company:        data.Company,
		Location:       data.Location,
		SalaryRange:    data.SalaryRange,
		Description:    data.Description,
		Requirements:   data.Requirements,
		SourceFileName: req.FileName,
		CreatedAt:      time.Now().UTC(),
	}

	vector, err := s.embedder.Generate(ctx, posting.EmbeddingText())
	if err != nil {
		return nil, job.ErrEmbeddingFailed().WithDetail("reason", err.Error())
	}
	posting.Embedding = kernel.EmbeddingVector(vector)

	// A freshly uploaded posting becomes the active match target.
	if err := s.jobRepo.Create(ctx, posting, true); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to store job posting", errx.TypeInternal)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		logx.Warnf("Failed to invalidate active job cache: %v", err)
	}

	// Keep the original file for auditing. A storage failure does not undo
	// the upload; the posting is already persisted.
	archivePath := s.storage.Join("jobs", posting.ID.String(), req.FileName)
	if err := s.storage.WriteFile(ctx, archivePath, req.Data); err != nil {
		logx.Warnf("Failed to archive job description file %s: %v", archivePath, err)
	}

	logx.Infof("Uploaded job posting %s (%s) and set it active", posting.ID.String(), posting.Title)

	return job.ToJobResponse(posting), nil
}

// GetJobByID retrieves a posting by ID
func (s *JobService) GetJobByID(ctx context.Context, id kernel.JobID) (*job.JobResponse, error) {
	posting, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to get job posting", errx.TypeInternal)
	}
	return job.ToJobResponse(posting), nil
}

// GetActiveJob retrieves the currently active posting, serving from cache
// when possible. The cached copy never includes the embedding.
func (s *JobService) GetActiveJob(ctx context.Context) (*job.JobResponse, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		logx.Warnf("Active job cache read failed: %v", err)
	}
	if cached != nil {
		return job.ToJobResponse(cached), nil
	}

	posting, err := s.jobRepo.GetActive(ctx)
	if err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to get active job posting", errx.TypeInternal)
	}

	if err := s.cache.Set(ctx, posting); err != nil {
		logx.Warnf("Failed to cache active job: %v", err)
	}

	return job.ToJobResponse(posting), nil
}

// ActivateJob makes the given posting the only active one
func (s *JobService) ActivateJob(ctx context.Context, id kernel.JobID) (*job.JobResponse, error) {
	if err := s.jobRepo.Activate(ctx, id); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, job.ErrActivationFailed().WithDetail("job_id", id.String())
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		logx.Warnf("Failed to invalidate active job cache: %v", err)
	}

	posting, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to reload activated posting", errx.TypeInternal)
	}

	logx.Infof("Activated job posting %s (%s)", posting.ID.String(), posting.Title)

	return job.ToJobResponse(posting), nil
}

// ListJobs retrieves postings with pagination, newest first
func (s *JobService) ListJobs(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.JobResponse], error) {
	pagination = pagination.Normalize()

	jobs, err := s.jobRepo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list job postings", errx.TypeInternal)
	}

	responses := make([]job.JobResponse, 0, len(jobs.Items))
	for _, j := range jobs.Items {
		responses = append(responses, *job.ToJobResponse(&j))
	}

	return &kernel.Paginated[job.JobResponse]{
		Items: responses,
		Page:  jobs.Page,
		Empty: jobs.Empty,
	}, nil
}
