package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements JobsRepo using Postgres. Skill lists are stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, user_id, title, company, location, seniority, salary_min, salary_max, description, required_skills, nice_to_have_skills, status, created_at`

// Create inserts a new job.
func (r *PGRepo) Create(ctx context.Context, j Job) error {
	const query = `
INSERT INTO jobs (
    id,
    user_id,
    title,
    company,
    location,
    seniority,
    salary_min,
    salary_max,
    description,
    required_skills,
    nice_to_have_skills,
    status,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	required, niceToHave, err := marshalSkillLists(j)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		j.ID,
		j.UserID,
		j.Title,
		j.Company,
		j.Location,
		j.Seniority,
		j.SalaryMin,
		j.SalaryMax,
		j.Description,
		required,
		niceToHave,
		j.Status,
		j.CreatedAt,
	)
	return err
}

// GetByID fetches a job by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, jobID string) (Job, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM jobs
WHERE user_id = $1 AND id = $2
LIMIT 1`, jobColumns)

	j, err := scanJob(r.DB.QueryRowContext(ctx, query, userId, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return j, nil
}

// ListByUser lists jobs ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Job, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM jobs
WHERE user_id = $1
ORDER BY created_at DESC`, jobColumns)

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a job.
func (r *PGRepo) Update(ctx context.Context, j Job) error {
	const query = `
UPDATE jobs
SET title = $1,
    company = $2,
    location = $3,
    seniority = $4,
    salary_min = $5,
    salary_max = $6,
    description = $7,
    required_skills = $8,
    nice_to_have_skills = $9,
    status = $10
WHERE user_id = $11 AND id = $12`

	required, niceToHave, err := marshalSkillLists(j)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		j.Title,
		j.Company,
		j.Location,
		j.Seniority,
		j.SalaryMin,
		j.SalaryMax,
		j.Description,
		required,
		niceToHave,
		j.Status,
		j.UserID,
		j.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a job.
func (r *PGRepo) Delete(ctx context.Context, userId, jobID string) error {
	const query = `DELETE FROM jobs WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userId, jobID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var j Job
	var required, niceToHave []byte
	err := row.Scan(
		&j.ID,
		&j.UserID,
		&j.Title,
		&j.Company,
		&j.Location,
		&j.Seniority,
		&j.SalaryMin,
		&j.SalaryMax,
		&j.Description,
		&required,
		&niceToHave,
		&j.Status,
		&j.CreatedAt,
	)
	if err != nil {
		return Job{}, err
	}

	if len(required) > 0 {
		if err := json.Unmarshal(required, &j.RequiredSkills); err != nil {
			return Job{}, fmt.Errorf("decode required skills: %w", err)
		}
	}
	if len(niceToHave) > 0 {
		if err := json.Unmarshal(niceToHave, &j.NiceToHaveSkills); err != nil {
			return Job{}, fmt.Errorf("decode nice-to-have skills: %w", err)
		}
	}
	return j, nil
}

func marshalSkillLists(j Job) (required, niceToHave []byte, err error) {
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	if j.NiceToHaveSkills == nil {
		j.NiceToHaveSkills = []string{}
	}

	required, err = json.Marshal(j.RequiredSkills)
	if err != nil {
		return nil, nil, fmt.Errorf("encode required skills: %w", err)
	}
	niceToHave, err = json.Marshal(j.NiceToHaveSkills)
	if err != nil {
		return nil, nil, fmt.Errorf("encode nice-to-have skills: %w", err)
	}
	return required, niceToHave, nil
}

var _ JobsRepo = (*PGRepo)(nil)
