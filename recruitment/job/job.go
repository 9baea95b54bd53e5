package job

import (
	"strings"
	"time"

	"github.com/matchhire/matchhire/pkg/kernel"
)

// JobPosting is one uploaded job description. At most one posting is
// active at a time; the active posting is the default match target for
// new candidate uploads.
type JobPosting struct {
	ID             kernel.JobID           `db:"id" json:"id"`
	Title          string                 `db:"title" json:"title"`
	Company        string                 `db:"company" json:"company"`
	Location       string                 `db:"location" json:"location"`
	SalaryRange    string                 `db:"salary_range" json:"salary_range"`
	Description    string                 `db:"description" json:"description"`
	Requirements   string                 `db:"requirements" json:"requirements"`
	SourceFileName string                 `db:"source_file_name" json:"source_file_name"`
	IsActive       bool                   `db:"is_active" json:"is_active"`
	Embedding      kernel.EmbeddingVector `db:"embedding" json:"-"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// EmbeddingText returns the canonical text representation of the posting
// used as embedding input: title, description and requirements joined by
// spaces, in that order. The result is deterministic for identical input.
func (j *JobPosting) EmbeddingText() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{j.Title, j.Description, j.Requirements} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// HasEmbedding reports whether the posting has been embedded
func (j *JobPosting) HasEmbedding() bool {
	return !j.Embedding.IsZero()
}
