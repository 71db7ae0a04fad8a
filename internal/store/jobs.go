package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talentbridge/matchengine/internal/types"
)

const jobColumns = `id, company_id, company_name, title, description,
	requirements, location, job_type, posting_type, salary, status, created_at`

func scanJob(row pgx.Row) (*types.Job, error) {
	var j types.Job
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.CompanyName, &j.Title, &j.Description,
		&j.Requirements, &j.Location, &j.JobType, &j.PostingType,
		&j.Salary, &j.Status, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// GetJob loads one job posting by id
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}
	return j, nil
}

// ListCompanyJobsSince returns a company's postings created after the
// given instant, newest first
func (db *DB) ListCompanyJobsSince(ctx context.Context, companyID uuid.UUID, since time.Time, limit int) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE company_id = $1 AND created_at >= $2
		 ORDER BY created_at DESC
		 LIMIT $3`, companyID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query company jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// ListJobsByStatus returns postings in the given status, newest first
func (db *DB) ListJobsByStatus(ctx context.Context, status string, limit int) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE status = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs by status: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]types.Job, error) {
	var out []types.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		out = append(out, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return out, nil
}
