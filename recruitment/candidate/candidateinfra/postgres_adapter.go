package candidateinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/match"
)

// PostgresCandidateRepository implements candidate.Repository using PostgreSQL
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

// NewPostgresCandidateRepository creates a new PostgreSQL candidate repository
func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type candidateModel struct {
	ID             string          `db:"id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Phone          string          `db:"phone"`
	Location       string          `db:"location"`
	Summary        string          `db:"summary"`
	Skills         pq.StringArray  `db:"skills"`
	Experience     []byte          `db:"experience"`
	Education      []byte          `db:"education"`
	Certifications pq.StringArray  `db:"certifications"`
	Status         string          `db:"status"`
	Notes          string          `db:"notes"`
	RawText        string          `db:"raw_text"`
	SourceFileName string          `db:"source_file_name"`
	StoragePath    string          `db:"storage_path"`
	Embedding      pgvector.Vector `db:"embedding"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (m *candidateModel) toEntity() (*candidate.Candidate, error) {
	var experience []candidate.ExperienceEntry
	if len(m.Experience) > 0 {
		if err := json.Unmarshal(m.Experience, &experience); err != nil {
			return nil, fmt.Errorf("failed to decode experience: %w", err)
		}
	}

	var education []candidate.EducationEntry
	if len(m.Education) > 0 {
		if err := json.Unmarshal(m.Education, &education); err != nil {
			return nil, fmt.Errorf("failed to decode education: %w", err)
		}
	}

	return &candidate.Candidate{
		ID:             kernel.CandidateID(m.ID),
		Name:           m.Name,
		Email:          kernel.Email(m.Email),
		Phone:          kernel.Phone(m.Phone),
		Location:       m.Location,
		Summary:        m.Summary,
		Skills:         []string(m.Skills),
		Experience:     experience,
		Education:      education,
		Certifications: []string(m.Certifications),
		Status:         candidate.NormalizeStatus(m.Status),
		Notes:          m.Notes,
		RawText:        m.RawText,
		SourceFileName: m.SourceFileName,
		StoragePath:    kernel.StoragePath(m.StoragePath),
		Embedding:      kernel.EmbeddingVector(m.Embedding.Slice()),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func fromEntity(c *candidate.Candidate) (*candidateModel, error) {
	experience, err := json.Marshal(c.Experience)
	if err != nil {
		return nil, fmt.Errorf("failed to encode experience: %w", err)
	}

	education, err := json.Marshal(c.Education)
	if err != nil {
		return nil, fmt.Errorf("failed to encode education: %w", err)
	}

	return &candidateModel{
		ID:             string(c.ID),
		Name:           c.Name,
		Email:          string(c.Email),
		Phone:          string(c.Phone),
		Location:       c.Location,
		Summary:        c.Summary,
		Skills:         pq.StringArray(c.Skills),
		Experience:     experience,
		Education:      education,
		Certifications: pq.StringArray(c.Certifications),
		Status:         string(c.Status),
		Notes:          c.Notes,
		RawText:        c.RawText,
		SourceFileName: c.SourceFileName,
		StoragePath:    string(c.StoragePath),
		Embedding:      pgvector.NewVector([]float32(c.Embedding)),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}, nil
}

const candidateColumns = `
	c.id, c.name, c.email, c.phone, c.location, c.summary,
	c.skills, c.experience, c.education, c.certifications,
	c.status, c.notes, c.raw_text, c.source_file_name, c.storage_path,
	c.embedding, c.created_at, c.updated_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new candidate
func (r *PostgresCandidateRepository) Create(ctx context.Context, cand *candidate.Candidate) error {
	model, err := fromEntity(cand)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO candidates (
			id, name, email, phone, location, summary,
			skills, experience, education, certifications,
			status, notes, raw_text, source_file_name, storage_path,
			embedding, created_at, updated_at
		) VALUES (
			:id, :name, :email, :phone, :location, :summary,
			:skills, :experience, :education, :certifications,
			:status, :notes, :raw_text, :source_file_name, :storage_path,
			:embedding, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return candidate.ErrPersistenceFailure(err).WithDetail("candidate_id", string(cand.ID))
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// GetByID retrieves a candidate by ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates c WHERE c.id = $1`, candidateColumns)

	var model candidateModel
	if err := r.db.GetContext(ctx, &model, query, string(id)); err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound()
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	return model.toEntity()
}

// buildListFilters translates the request filters into WHERE predicates
// and positional args. The search term matches name, email and the
// space-joined skills array. Score bounds compare against a.match_score,
// so candidates without an analysis row never satisfy them.
func buildListFilters(req candidate.ListCandidatesRequest) ([]string, []interface{}) {
	whereClauses := []string{}
	args := []interface{}{}
	argCount := 1

	if !req.JobID.IsEmpty() {
		whereClauses = append(whereClauses, fmt.Sprintf(`a.job_id = $%d`, argCount))
		args = append(args, req.JobID.String())
		argCount++
	}

	if req.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(`(
			c.name ILIKE $%d OR
			c.email ILIKE $%d OR
			array_to_string(c.skills, ' ') ILIKE $%d
		)`, argCount, argCount, argCount))
		args = append(args, "%"+req.Search+"%")
		argCount++
	}

	if req.MinScore != nil {
		whereClauses = append(whereClauses, fmt.Sprintf(`a.match_score >= $%d`, argCount))
		args = append(args, *req.MinScore)
		argCount++
	}

	if req.MaxScore != nil {
		whereClauses = append(whereClauses, fmt.Sprintf(`a.match_score <= $%d`, argCount))
		args = append(args, *req.MaxScore)
		argCount++
	}

	if req.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(`c.status = $%d`, argCount))
		args = append(args, req.Status)
	}

	return whereClauses, args
}

// List retrieves candidates matching the filters, joined with their
// analyses. Score filters compare against a.match_score and therefore
// exclude candidates that have no analysis row.
func (r *PostgresCandidateRepository) List(ctx context.Context, req candidate.ListCandidatesRequest) ([]candidate.CandidateWithAnalysis, int, error) {
	whereClauses, args := buildListFilters(req)
	argCount := len(args) + 1

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Count total
	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM candidates c
		LEFT JOIN match_analyses a ON a.candidate_id = c.id
		%s
	`, whereSQL)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	offset := (req.Page - 1) * req.Limit

	query := fmt.Sprintf(`
		SELECT
			%s,
			a.id AS analysis_id, a.job_id AS analysis_job_id,
			a.match_score, a.skills_score, a.experience_score,
			a.education_score, a.industry_score,
			a.strengths, a.weaknesses, a.recommendation,
			a.detailed_analysis, a.passed,
			a.created_at AS analysis_created_at
		FROM candidates c
		LEFT JOIN match_analyses a ON a.candidate_id = c.id
		%s
		ORDER BY a.match_score DESC NULLS LAST, c.created_at DESC, c.id DESC
		LIMIT $%d OFFSET $%d
	`, candidateColumns, whereSQL, argCount, argCount+1)

	args = append(args, req.Limit, offset)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	results := make([]candidate.CandidateWithAnalysis, 0)
	for rows.Next() {
		var model candidateModel
		var (
			analysisID        sql.NullString
			analysisJobID     sql.NullString
			matchScore        sql.NullInt64
			skillsScore       sql.NullInt64
			experienceScore   sql.NullInt64
			educationScore    sql.NullInt64
			industryScore     sql.NullInt64
			strengths         pq.StringArray
			weaknesses        pq.StringArray
			recommendation    sql.NullString
			detailedAnalysis  sql.NullString
			passed            sql.NullBool
			analysisCreatedAt sql.NullTime
		)

		if err := rows.Scan(
			&model.ID, &model.Name, &model.Email, &model.Phone,
			&model.Location, &model.Summary, &model.Skills,
			&model.Experience, &model.Education, &model.Certifications,
			&model.Status, &model.Notes, &model.RawText,
			&model.SourceFileName, &model.StoragePath, &model.Embedding,
			&model.CreatedAt, &model.UpdatedAt,
			&analysisID, &analysisJobID,
			&matchScore, &skillsScore, &experienceScore,
			&educationScore, &industryScore,
			&strengths, &weaknesses, &recommendation,
			&detailedAnalysis, &passed, &analysisCreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan candidate row: %w", err)
		}

		entity, err := model.toEntity()
		if err != nil {
			return nil, 0, err
		}

		item := candidate.CandidateWithAnalysis{Candidate: *entity}
		if analysisID.Valid {
			item.Analysis = &match.MatchAnalysis{
				ID:               kernel.AnalysisID(analysisID.String),
				CandidateID:      entity.ID,
				JobID:            kernel.JobID(analysisJobID.String),
				MatchScore:       int(matchScore.Int64),
				SkillsScore:      int(skillsScore.Int64),
				ExperienceScore:  int(experienceScore.Int64),
				EducationScore:   int(educationScore.Int64),
				IndustryScore:    int(industryScore.Int64),
				Strengths:        []string(strengths),
				Weaknesses:       []string(weaknesses),
				Recommendation:   recommendation.String,
				DetailedAnalysis: detailedAnalysis.String,
				Passed:           passed.Bool,
				CreatedAt:        analysisCreatedAt.Time,
			}
		}

		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate candidate rows: %w", err)
	}

	return results, total, nil
}

// UpdateStatus sets the review status of a candidate
func (r *PostgresCandidateRepository) UpdateStatus(ctx context.Context, id kernel.CandidateID, status candidate.Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE candidates SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), string(id),
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound()
	}

	return nil
}

// UpdateNotes replaces the recruiter notes of a candidate
func (r *PostgresCandidateRepository) UpdateNotes(ctx context.Context, id kernel.CandidateID, notes string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE candidates SET notes = $1, updated_at = NOW() WHERE id = $2`,
		notes, string(id),
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate notes: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound()
	}

	return nil
}

// Delete removes a candidate and, via the FK cascade, its analysis
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound()
	}

	return nil
}
