package match

import (
	"time"

	"github.com/matchhire/matchhire/pkg/kernel"
)

// MatchAnalysis is the scored comparison between one candidate and one
// job posting. A candidate has at most one analysis; re-running the
// pipeline replaces it.
type MatchAnalysis struct {
	ID               kernel.AnalysisID  `db:"id" json:"id"`
	CandidateID      kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	JobID            kernel.JobID       `db:"job_id" json:"job_id"`
	MatchScore       int                `db:"match_score" json:"match_score"`
	SkillsScore      int                `db:"skills_score" json:"skills_score"`
	ExperienceScore  int                `db:"experience_score" json:"experience_score"`
	EducationScore   int                `db:"education_score" json:"education_score"`
	IndustryScore    int                `db:"industry_score" json:"industry_score"`
	Strengths        []string           `db:"strengths" json:"strengths"`
	Weaknesses       []string           `db:"weaknesses" json:"weaknesses"`
	Recommendation   string             `db:"recommendation" json:"recommendation"`
	DetailedAnalysis string             `db:"detailed_analysis" json:"detailed_analysis"`
	Passed           bool               `db:"passed" json:"passed"`
	CreatedAt        time.Time          `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// ClampScores bounds every score to [0,100] before persistence
func (m *MatchAnalysis) ClampScores() {
	m.MatchScore = ClampScore(m.MatchScore)
	m.SkillsScore = ClampScore(m.SkillsScore)
	m.ExperienceScore = ClampScore(m.ExperienceScore)
	m.EducationScore = ClampScore(m.EducationScore)
	m.IndustryScore = ClampScore(m.IndustryScore)
}
