package candidate

import (
	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/match"
)

// UploadFile - one resume file within a bulk upload
type UploadFile struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// BulkUploadRequest - up to MaxBatchSize resume files processed sequentially.
// JobID is optional; the active posting is used when it is empty.
type BulkUploadRequest struct {
	JobID kernel.JobID `json:"job_id"`
	Files []UploadFile `json:"-"`
}

// UploadError - one failed file within a bulk upload
type UploadError struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// BulkUploadResponse - per-file outcomes in submission order
type BulkUploadResponse struct {
	Results []CandidateResponse `json:"results"`
	Errors  []UploadError       `json:"errors"`
}

// ListCandidatesRequest - dashboard filters. Score bounds are inclusive
// and exclude candidates without an analysis.
type ListCandidatesRequest struct {
	JobID    kernel.JobID `json:"job_id"`
	Search   string       `json:"search"`
	MinScore *int         `json:"min_score"`
	MaxScore *int         `json:"max_score"`
	Status   string       `json:"status"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
}

// ListCandidatesResponse - one dashboard page
type ListCandidatesResponse struct {
	Candidates []CandidateResponse `json:"candidates"`
	Total      int                 `json:"total"`
	HasMore    bool                `json:"has_more"`
}

// CandidateWithAnalysis pairs a candidate with its analysis, if one exists
type CandidateWithAnalysis struct {
	Candidate Candidate
	Analysis  *match.MatchAnalysis
}

// CandidateResponse - candidate returned to the API layer
type CandidateResponse struct {
	ID             kernel.CandidateID      `json:"id"`
	Name           string                  `json:"name"`
	Email          kernel.Email            `json:"email"`
	Phone          kernel.Phone            `json:"phone"`
	Location       string                  `json:"location"`
	Summary        string                  `json:"summary"`
	Skills         []string                `json:"skills"`
	Experience     []ExperienceEntry       `json:"experience"`
	Education      []EducationEntry        `json:"education"`
	Certifications []string                `json:"certifications,omitempty"`
	Status         Status                  `json:"status"`
	Notes          string                  `json:"notes"`
	SourceFileName string                  `json:"source_file_name"`
	CreatedAt      string                  `json:"created_at"`
	Analysis       *match.AnalysisResponse `json:"analysis,omitempty"`
}

// ToCandidateResponse converts a candidate and optional analysis to the
// API representation
func ToCandidateResponse(c *Candidate, analysis *match.MatchAnalysis) *CandidateResponse {
	resp := &CandidateResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Location:       c.Location,
		Summary:        c.Summary,
		Skills:         c.Skills,
		Experience:     c.Experience,
		Education:      c.Education,
		Certifications: c.Certifications,
		Status:         c.Status,
		Notes:          c.Notes,
		SourceFileName: c.SourceFileName,
		CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if analysis != nil {
		resp.Analysis = match.ToAnalysisResponse(analysis)
	}
	return resp
}

// UpdateStatusRequest - explicit status change from the dashboard
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateNotesRequest - recruiter notes, bounded at MaxNotesLength
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}
