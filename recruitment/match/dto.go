package match

import (
	"github.com/matchhire/matchhire/pkg/kernel"
)

// AnalysisResponse - analysis returned to the API layer
type AnalysisResponse struct {
	ID               kernel.AnalysisID `json:"id"`
	JobID            kernel.JobID      `json:"job_id"`
	MatchScore       int               `json:"match_score"`
	SkillsScore      int               `json:"skills_score"`
	ExperienceScore  int               `json:"experience_score"`
	EducationScore   int               `json:"education_score"`
	IndustryScore    int               `json:"industry_score"`
	Strengths        []string          `json:"strengths"`
	Weaknesses       []string          `json:"weaknesses"`
	Recommendation   string            `json:"recommendation"`
	DetailedAnalysis string            `json:"detailed_analysis"`
	Passed           bool              `json:"passed"`
	CreatedAt        string            `json:"created_at"`
}

// ToAnalysisResponse converts an analysis to its API representation
func ToAnalysisResponse(m *MatchAnalysis) *AnalysisResponse {
	return &AnalysisResponse{
		ID:               m.ID,
		JobID:            m.JobID,
		MatchScore:       m.MatchScore,
		SkillsScore:      m.SkillsScore,
		ExperienceScore:  m.ExperienceScore,
		EducationScore:   m.EducationScore,
		IndustryScore:    m.IndustryScore,
		Strengths:        m.Strengths,
		Weaknesses:       m.Weaknesses,
		Recommendation:   m.Recommendation,
		DetailedAnalysis: m.DetailedAnalysis,
		Passed:           m.Passed,
		CreatedAt:        m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
