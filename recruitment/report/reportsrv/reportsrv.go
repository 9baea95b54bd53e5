package reportsrv

import (
	"context"

	"github.com/matchhire/matchhire/pkg/errx"
	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/job"
	"github.com/matchhire/matchhire/recruitment/match"
	"github.com/matchhire/matchhire/recruitment/report"
)

// AnalysisProvider retrieves the stored analysis for a candidate
type AnalysisProvider interface {
	GetByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*match.MatchAnalysis, error)
}

// JobProvider resolves the posting an analysis was scored against
type JobProvider interface {
	GetByID(ctx context.Context, id kernel.JobID) (*job.JobPosting, error)
}

// ReportService assembles candidate reports
type ReportService struct {
	candidateRepo candidate.Repository
	analyses      AnalysisProvider
	jobs          JobProvider
}

// NewReportService creates a new instance of the report service
func NewReportService(
	candidateRepo candidate.Repository,
	analyses AnalysisProvider,
	jobs JobProvider,
) *ReportService {
	return &ReportService{
		candidateRepo: candidateRepo,
		analyses:      analyses,
		jobs:          jobs,
	}
}

// BuildReport assembles the report document for one candidate. A missing
// analysis or posting only drops the analysis section; a missing candidate
// or a failed analysis lookup is an error.
func (s *ReportService) BuildReport(ctx context.Context, id kernel.CandidateID, opts report.Options) (*report.Document, error) {
	cand, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to load candidate for report", errx.TypeInternal)
	}

	var analysis *match.MatchAnalysis
	var jobTitle, jobCompany string

	if opts.IncludeAnalysis {
		analysis, err = s.analyses.GetByCandidateID(ctx, id)
		if err != nil {
			if !match.IsAnalysisNotFound(err) {
				if _, ok := err.(*errx.Error); ok {
					return nil, err
				}
				return nil, errx.Wrap(err, "failed to load analysis for report", errx.TypeInternal)
			}
			analysis = nil
		}
		if analysis != nil {
			if posting, err := s.jobs.GetByID(ctx, analysis.JobID); err == nil {
				jobTitle = posting.Title
				jobCompany = posting.Company
			}
		}
	}

	return report.Build(cand, analysis, jobTitle, jobCompany, opts), nil
}
