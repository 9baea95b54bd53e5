package matchinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/match"
)

// PostgresMatchRepository implements match.Repository using PostgreSQL
type PostgresMatchRepository struct {
	db *sqlx.DB
}

// NewPostgresMatchRepository creates a new PostgreSQL match repository
func NewPostgresMatchRepository(db *sqlx.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type analysisModel struct {
	ID               string         `db:"id"`
	CandidateID      string         `db:"candidate_id"`
	JobID            string         `db:"job_id"`
	MatchScore       int            `db:"match_score"`
	SkillsScore      int            `db:"skills_score"`
	ExperienceScore  int            `db:"experience_score"`
	EducationScore   int            `db:"education_score"`
	IndustryScore    int            `db:"industry_score"`
	Strengths        pq.StringArray `db:"strengths"`
	Weaknesses       pq.StringArray `db:"weaknesses"`
	Recommendation   string         `db:"recommendation"`
	DetailedAnalysis string         `db:"detailed_analysis"`
	Passed           bool           `db:"passed"`
	CreatedAt        time.Time      `db:"created_at"`
}

func (m *analysisModel) toEntity() *match.MatchAnalysis {
	return &match.MatchAnalysis{
		ID:               kernel.AnalysisID(m.ID),
		CandidateID:      kernel.CandidateID(m.CandidateID),
		JobID:            kernel.JobID(m.JobID),
		MatchScore:       m.MatchScore,
		SkillsScore:      m.SkillsScore,
		ExperienceScore:  m.ExperienceScore,
		EducationScore:   m.EducationScore,
		IndustryScore:    m.IndustryScore,
		Strengths:        []string(m.Strengths),
		Weaknesses:       []string(m.Weaknesses),
		Recommendation:   m.Recommendation,
		DetailedAnalysis: m.DetailedAnalysis,
		Passed:           m.Passed,
		CreatedAt:        m.CreatedAt,
	}
}

func fromEntity(a *match.MatchAnalysis) *analysisModel {
	return &analysisModel{
		ID:               string(a.ID),
		CandidateID:      string(a.CandidateID),
		JobID:            string(a.JobID),
		MatchScore:       a.MatchScore,
		SkillsScore:      a.SkillsScore,
		ExperienceScore:  a.ExperienceScore,
		EducationScore:   a.EducationScore,
		IndustryScore:    a.IndustryScore,
		Strengths:        pq.StringArray(a.Strengths),
		Weaknesses:       pq.StringArray(a.Weaknesses),
		Recommendation:   a.Recommendation,
		DetailedAnalysis: a.DetailedAnalysis,
		Passed:           a.Passed,
		CreatedAt:        a.CreatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new analysis. The unique index on candidate_id enforces
// one analysis per candidate; the insert replaces any previous row.
func (r *PostgresMatchRepository) Create(ctx context.Context, analysis *match.MatchAnalysis) error {
	query := `
		INSERT INTO match_analyses (
			id, candidate_id, job_id, match_score,
			skills_score, experience_score, education_score, industry_score,
			strengths, weaknesses, recommendation, detailed_analysis,
			passed, created_at
		) VALUES (
			:id, :candidate_id, :job_id, :match_score,
			:skills_score, :experience_score, :education_score, :industry_score,
			:strengths, :weaknesses, :recommendation, :detailed_analysis,
			:passed, :created_at
		)
		ON CONFLICT (candidate_id) DO UPDATE SET
			id = EXCLUDED.id,
			job_id = EXCLUDED.job_id,
			match_score = EXCLUDED.match_score,
			skills_score = EXCLUDED.skills_score,
			experience_score = EXCLUDED.experience_score,
			education_score = EXCLUDED.education_score,
			industry_score = EXCLUDED.industry_score,
			strengths = EXCLUDED.strengths,
			weaknesses = EXCLUDED.weaknesses,
			recommendation = EXCLUDED.recommendation,
			detailed_analysis = EXCLUDED.detailed_analysis,
			passed = EXCLUDED.passed,
			created_at = EXCLUDED.created_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(analysis)); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return match.ErrPersistenceFailure(err).WithDetail("candidate_id", string(analysis.CandidateID))
		}
		return fmt.Errorf("failed to create match analysis: %w", err)
	}

	return nil
}

// GetByCandidateID retrieves the analysis for a candidate
func (r *PostgresMatchRepository) GetByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*match.MatchAnalysis, error) {
	query := `
		SELECT id, candidate_id, job_id, match_score,
		       skills_score, experience_score, education_score, industry_score,
		       strengths, weaknesses, recommendation, detailed_analysis,
		       passed, created_at
		FROM match_analyses
		WHERE candidate_id = $1
	`

	var model analysisModel
	if err := r.db.GetContext(ctx, &model, query, string(candidateID)); err != nil {
		if err == sql.ErrNoRows {
			return nil, match.ErrAnalysisNotFound()
		}
		return nil, fmt.Errorf("failed to get match analysis: %w", err)
	}

	return model.toEntity(), nil
}

// DeleteByCandidateID removes the analysis for a candidate, if any
func (r *PostgresMatchRepository) DeleteByCandidateID(ctx context.Context, candidateID kernel.CandidateID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM match_analyses WHERE candidate_id = $1`, string(candidateID)); err != nil {
		return fmt.Errorf("failed to delete match analysis: %w", err)
	}
	return nil
}
