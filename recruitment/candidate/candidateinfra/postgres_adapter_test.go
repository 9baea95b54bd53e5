package candidateinfra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/candidate"
)

func TestBuildListFiltersSearchCoversNameEmailAndSkills(t *testing.T) {
	clauses, args := buildListFilters(candidate.ListCandidatesRequest{Search: "engineer"})

	require.Len(t, clauses, 1)
	assert.Contains(t, clauses[0], "c.name ILIKE $1")
	assert.Contains(t, clauses[0], "c.email ILIKE $1")
	// A skills entry like "software engineering" must match a substring
	// search, so the array is flattened before the comparison.
	assert.Contains(t, clauses[0], "array_to_string(c.skills, ' ') ILIKE $1")

	require.Len(t, args, 1)
	assert.Equal(t, "%engineer%", args[0])
}

func TestBuildListFiltersScoreBoundsUseAnalysisColumn(t *testing.T) {
	min, max := 70, 90
	clauses, args := buildListFilters(candidate.ListCandidatesRequest{
		MinScore: &min,
		MaxScore: &max,
	})

	// Comparing against a.match_score means a candidate without an
	// analysis row (NULL after the LEFT JOIN) never satisfies the bound.
	require.Len(t, clauses, 2)
	assert.Equal(t, "a.match_score >= $1", clauses[0])
	assert.Equal(t, "a.match_score <= $2", clauses[1])
	assert.Equal(t, []interface{}{70, 90}, args)
}

func TestBuildListFiltersEmptyRequest(t *testing.T) {
	clauses, args := buildListFilters(candidate.ListCandidatesRequest{})

	assert.Empty(t, clauses)
	assert.Empty(t, args)
}

func TestBuildListFiltersNumbersPlaceholdersSequentially(t *testing.T) {
	min := 50
	clauses, args := buildListFilters(candidate.ListCandidatesRequest{
		JobID:    kernel.NewJobID("job-1"),
		Search:   "go",
		MinScore: &min,
		Status:   "shortlisted",
	})

	require.Len(t, clauses, 4)
	assert.Equal(t, "a.job_id = $1", clauses[0])
	assert.Contains(t, clauses[1], "ILIKE $2")
	assert.Equal(t, "a.match_score >= $3", clauses[2])
	assert.Equal(t, "c.status = $4", clauses[3])
	assert.Equal(t, []interface{}{"job-1", "%go%", 50, "shortlisted"}, args)
}
