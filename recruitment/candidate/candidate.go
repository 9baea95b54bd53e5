package candidate

import (
	"strings"
	"time"

	"github.com/matchhire/matchhire/pkg/kernel"
)

// MaxNotesLength bounds recruiter notes to keep rows and reports small
const MaxNotesLength = 10000

// Status is the review state of a candidate
type Status string

const (
	StatusPending     Status = "pending"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

// NormalizeStatus coerces any unknown value to pending. Used at ingestion
// time, where a bad value must not block the pipeline.
func NormalizeStatus(s string) Status {
	switch Status(s) {
	case StatusPending, StatusShortlisted, StatusRejected, StatusHired:
		return Status(s)
	default:
		return StatusPending
	}
}

// ParseStatus validates a status for an explicit update. Unknown values
// are rejected and the stored status stays untouched.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusShortlisted, StatusRejected, StatusHired:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus().WithDetail("status", s)
	}
}

// ExperienceEntry is one work history item on a candidate profile
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// EducationEntry is one education history item on a candidate profile
type EducationEntry struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduation_date"`
}

// Candidate is one parsed resume. RawText keeps the full extracted
// document text so profiles can be re-parsed without the source file.
// The embedding is derived from EmbeddingText and never leaves the
// persistence layer.
type Candidate struct {
	ID             kernel.CandidateID     `db:"id" json:"id"`
	Name           string                 `db:"name" json:"name"`
	Email          kernel.Email           `db:"email" json:"email"`
	Phone          kernel.Phone           `db:"phone" json:"phone"`
	Location       string                 `db:"location" json:"location"`
	Summary        string                 `db:"summary" json:"summary"`
	Skills         []string               `db:"skills" json:"skills"`
	Experience     []ExperienceEntry      `db:"experience" json:"experience"`
	Education      []EducationEntry       `db:"education" json:"education"`
	Certifications []string               `db:"certifications" json:"certifications,omitempty"`
	Status         Status                 `db:"status" json:"status"`
	Notes          string                 `db:"notes" json:"notes"`
	RawText        string                 `db:"raw_text" json:"-"`
	SourceFileName string                 `db:"source_file_name" json:"source_file_name"`
	StoragePath    kernel.StoragePath     `db:"storage_path" json:"-"`
	Embedding      kernel.EmbeddingVector `db:"embedding" json:"-"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time              `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// EmbeddingText returns the canonical text representation of the candidate
// used as embedding input: name, summary, skills joined by spaces, one
// "{title} at {company}: {description}" line per experience and one
// "{degree} from {institution}" line per education, all joined by spaces.
// Identical profiles always produce identical text.
func (c *Candidate) EmbeddingText() string {
	parts := make([]string, 0, 3+len(c.Experience)+len(c.Education))

	if c.Name != "" {
		parts = append(parts, c.Name)
	}
	if c.Summary != "" {
		parts = append(parts, c.Summary)
	}
	if len(c.Skills) > 0 {
		parts = append(parts, strings.Join(c.Skills, " "))
	}
	for _, exp := range c.Experience {
		parts = append(parts, exp.Title+" at "+exp.Company+": "+exp.Description)
	}
	for _, edu := range c.Education {
		parts = append(parts, edu.Degree+" from "+edu.Institution)
	}

	return strings.Join(parts, " ")
}

// HasEmbedding reports whether the candidate has been embedded
func (c *Candidate) HasEmbedding() bool {
	return !c.Embedding.IsZero()
}
