package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talentbridge/matchengine/internal/types"
)

// candidateColumns is the scan list shared by all candidate queries.
// profile is a jsonb column holding the nested lists (skills,
// experience, education, languages, trainings); flat columns mirror
// the fields used for filtering.
const candidateColumns = `id, first_name, last_name, email, city, country,
	specialization, desired_job_type, expected_salary, account_disabled,
	created_at, last_login, profile`

// candidateProfile is the jsonb payload of the profile column
type candidateProfile struct {
	ComputerSkills []types.ComputerSkill `json:"computer_skills,omitempty"`
	SoftwareSkills []types.SoftwareSkill `json:"software_skills,omitempty"`
	OtherSkills    []string              `json:"other_skills,omitempty"`
	ExperienceList []types.Experience    `json:"experience_list,omitempty"`
	EducationList  []types.Education     `json:"education_list,omitempty"`
	Interests      []string              `json:"interests,omitempty"`
	Languages      []types.Language      `json:"languages,omitempty"`
	TrainingList   []types.Training      `json:"training_list,omitempty"`
}

func scanCandidate(row pgx.Row) (*types.Candidate, error) {
	var c types.Candidate
	var profile candidateProfile
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.City, &c.Country,
		&c.Specialization, &c.DesiredJobType, &c.ExpectedSalary, &c.AccountDisabled,
		&c.CreatedAt, &c.LastLogin, &profile,
	)
	if err != nil {
		return nil, err
	}
	c.ComputerSkills = profile.ComputerSkills
	c.SoftwareSkills = profile.SoftwareSkills
	c.OtherSkills = profile.OtherSkills
	c.ExperienceList = profile.ExperienceList
	c.EducationList = profile.EducationList
	c.Interests = profile.Interests
	c.Languages = profile.Languages
	c.TrainingList = profile.TrainingList
	return &c, nil
}

// GetCandidate loads one candidate by id
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)

	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate %s: %w", id, err)
	}
	return c, nil
}

// QueryCandidates returns candidates matching the filter, newest first
func (db *DB) QueryCandidates(ctx context.Context, filter CandidateFilter) ([]types.Candidate, error) {
	var where []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.IncludeDisabled {
		where = append(where, "NOT account_disabled")
	}
	if !filter.CreatedSince.IsZero() {
		where = append(where, "created_at >= "+arg(filter.CreatedSince))
	}
	if !filter.ActiveSince.IsZero() {
		where = append(where, "last_login >= "+arg(filter.ActiveSince))
	}
	if len(filter.Keywords) > 0 {
		// skills_text is a denormalized lower-cased concatenation of
		// the candidate's skill entries, maintained on write
		var matches []string
		for _, kw := range filter.Keywords {
			matches = append(matches, "skills_text LIKE "+arg("%"+strings.ToLower(kw)+"%"))
		}
		where = append(where, "("+strings.Join(matches, " OR ")+")")
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var out []types.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return out, nil
}
