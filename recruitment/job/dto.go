package job

import (
	"github.com/matchhire/matchhire/pkg/kernel"
)

// UploadJobRequest - one job description file to extract and store
type UploadJobRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// JobResponse - posting returned to the API layer (embedding omitted)
type JobResponse struct {
	ID             kernel.JobID `json:"id"`
	Title          string       `json:"title"`
	Company        string       `json:"company"`
	Location       string       `json:"location"`
	SalaryRange    string       `json:"salary_range"`
	Description    string       `json:"description"`
	Requirements   string       `json:"requirements"`
	SourceFileName string       `json:"source_file_name"`
	IsActive       bool         `json:"is_active"`
	CreatedAt      string       `json:"created_at"`
}

// ToJobResponse converts a posting to its API representation
func ToJobResponse(j *JobPosting) *JobResponse {
	return &JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		SalaryRange:    j.SalaryRange,
		Description:    j.Description,
		Requirements:   j.Requirements,
		SourceFileName: j.SourceFileName,
		IsActive:       j.IsActive,
		CreatedAt:      j.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
