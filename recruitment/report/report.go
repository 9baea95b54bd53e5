package report

import (
	"time"

	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/match"
)

// Options selects which sections the assembled report carries
type Options struct {
	IncludeAnalysis bool `json:"include_analysis"`
	IncludeContact  bool `json:"include_contact"`
	IncludeNotes    bool `json:"include_notes"`
}

// Document is the assembled candidate report consumed by the downstream
// PDF renderer. Sections excluded by the options are nil and omitted
// from the JSON body.
type Document struct {
	CandidateID   kernel.CandidateID `json:"candidate_id"`
	CandidateName string             `json:"candidate_name"`
	JobTitle      string             `json:"job_title,omitempty"`
	JobCompany    string             `json:"job_company,omitempty"`
	GeneratedAt   time.Time          `json:"generated_at"`
	Profile       ProfileSection     `json:"profile"`
	Contact       *ContactSection    `json:"contact,omitempty"`
	Analysis      *AnalysisSection   `json:"analysis,omitempty"`
	Notes         string             `json:"notes,omitempty"`
}

// ProfileSection carries the candidate background, always present
type ProfileSection struct {
	Summary        string                      `json:"summary"`
	Skills         []string                    `json:"skills"`
	Experience     []candidate.ExperienceEntry `json:"experience"`
	Education      []candidate.EducationEntry  `json:"education"`
	Certifications []string                    `json:"certifications,omitempty"`
	Status         candidate.Status            `json:"status"`
}

// ContactSection carries the candidate's contact details
type ContactSection struct {
	Email    kernel.Email `json:"email"`
	Phone    kernel.Phone `json:"phone"`
	Location string       `json:"location"`
}

// AnalysisSection carries the match assessment
type AnalysisSection struct {
	MatchScore       int      `json:"match_score"`
	SkillsScore      int      `json:"skills_score"`
	ExperienceScore  int      `json:"experience_score"`
	EducationScore   int      `json:"education_score"`
	IndustryScore    int      `json:"industry_score"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Recommendation   string   `json:"recommendation"`
	DetailedAnalysis string   `json:"detailed_analysis"`
	Passed           bool     `json:"passed"`
}

// Build assembles a report document from the candidate, the optional
// analysis, and the job the analysis was scored against. The analysis
// section stays empty when the candidate has no analysis, regardless
// of the options.
func Build(cand *candidate.Candidate, analysis *match.MatchAnalysis, jobTitle, jobCompany string, opts Options) *Document {
	doc := &Document{
		CandidateID:   cand.ID,
		CandidateName: cand.Name,
		GeneratedAt:   time.Now().UTC(),
		Profile: ProfileSection{
			Summary:        cand.Summary,
			Skills:         cand.Skills,
			Experience:     cand.Experience,
			Education:      cand.Education,
			Certifications: cand.Certifications,
			Status:         cand.Status,
		},
	}

	if opts.IncludeContact {
		doc.Contact = &ContactSection{
			Email:    cand.Email,
			Phone:    cand.Phone,
			Location: cand.Location,
		}
	}

	if opts.IncludeAnalysis && analysis != nil {
		doc.JobTitle = jobTitle
		doc.JobCompany = jobCompany
		doc.Analysis = &AnalysisSection{
			MatchScore:       analysis.MatchScore,
			SkillsScore:      analysis.SkillsScore,
			ExperienceScore:  analysis.ExperienceScore,
			EducationScore:   analysis.EducationScore,
			IndustryScore:    analysis.IndustryScore,
			Strengths:        analysis.Strengths,
			Weaknesses:       analysis.Weaknesses,
			Recommendation:   analysis.Recommendation,
			DetailedAnalysis: analysis.DetailedAnalysis,
			Passed:           analysis.Passed,
		}
	}

	if opts.IncludeNotes {
		doc.Notes = cand.Notes
	}

	return doc
}
