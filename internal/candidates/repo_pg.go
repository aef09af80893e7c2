package candidates

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"recruit-backend/internal/resume"
)

// PGRepo implements CandidatesRepo using Postgres. Skills, experience and
// education are stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

const candidateColumns = `id, user_id, full_name, email, phone, location, headline, resume_url, raw_text, skills, experience, education, years_of_experience, ats_score, parse_status, parse_error, created_at`

// Create inserts a new candidate.
func (r *PGRepo) Create(ctx context.Context, c Candidate) error {
	const query = `
INSERT INTO candidates (
    id,
    user_id,
    full_name,
    email,
    phone,
    location,
    headline,
    resume_url,
    raw_text,
    skills,
    experience,
    education,
    years_of_experience,
    ats_score,
    parse_status,
    parse_error,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	skills, experience, education, err := marshalCollections(c)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		c.ID,
		c.UserID,
		c.FullName,
		c.Email,
		c.Phone,
		c.Location,
		c.Headline,
		c.ResumeURL,
		c.RawText,
		skills,
		experience,
		education,
		c.YearsOfExperience,
		c.ATSScore,
		c.ParseStatus,
		c.ParseError,
		c.CreatedAt,
	)
	return err
}

// GetByID fetches a candidate by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, candidateID string) (Candidate, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM candidates
WHERE user_id = $1 AND id = $2
LIMIT 1`, candidateColumns)

	c, err := scanCandidate(r.DB.QueryRowContext(ctx, query, userId, candidateID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

// ListByUser lists candidates ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
SELECT %s
FROM candidates
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`, candidateColumns)

	rows, err := r.DB.QueryContext(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListScorable returns candidates with raw text, newest first, capped at limit.
func (r *PGRepo) ListScorable(ctx context.Context, userId string, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 200
	}
	query := fmt.Sprintf(`
SELECT %s
FROM candidates
WHERE user_id = $1 AND raw_text IS NOT NULL
ORDER BY created_at DESC
LIMIT $2`, candidateColumns)

	rows, err := r.DB.QueryContext(ctx, query, userId, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a candidate.
func (r *PGRepo) Update(ctx context.Context, c Candidate) error {
	const query = `
UPDATE candidates
SET full_name = $1,
    email = $2,
    phone = $3,
    location = $4,
    headline = $5,
    resume_url = $6,
    raw_text = $7,
    skills = $8,
    experience = $9,
    education = $10,
    years_of_experience = $11,
    ats_score = $12,
    parse_status = $13,
    parse_error = $14
WHERE user_id = $15 AND id = $16`

	skills, experience, education, err := marshalCollections(c)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		c.FullName,
		c.Email,
		c.Phone,
		c.Location,
		c.Headline,
		c.ResumeURL,
		c.RawText,
		skills,
		experience,
		education,
		c.YearsOfExperience,
		c.ATSScore,
		c.ParseStatus,
		c.ParseError,
		c.UserID,
		c.ID,
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

// Delete removes a candidate.
func (r *PGRepo) Delete(ctx context.Context, userId, candidateID string) error {
	const query = `DELETE FROM candidates WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userId, candidateID)
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

func scanCandidate(row rowScanner) (Candidate, error) {
	var c Candidate
	var skills, experience, education []byte
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.FullName,
		&c.Email,
		&c.Phone,
		&c.Location,
		&c.Headline,
		&c.ResumeURL,
		&c.RawText,
		&skills,
		&experience,
		&education,
		&c.YearsOfExperience,
		&c.ATSScore,
		&c.ParseStatus,
		&c.ParseError,
		&c.CreatedAt,
	)
	if err != nil {
		return Candidate{}, err
	}

	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &c.Skills); err != nil {
			return Candidate{}, fmt.Errorf("decode skills: %w", err)
		}
	}
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &c.Experience); err != nil {
			return Candidate{}, fmt.Errorf("decode experience: %w", err)
		}
	}
	if len(education) > 0 {
		if err := json.Unmarshal(education, &c.Education); err != nil {
			return Candidate{}, fmt.Errorf("decode education: %w", err)
		}
	}
	return c, nil
}

func marshalCollections(c Candidate) (skills, experience, education []byte, err error) {
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Experience == nil {
		c.Experience = []resume.Experience{}
	}
	if c.Education == nil {
		c.Education = []resume.Education{}
	}

	skills, err = json.Marshal(c.Skills)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode skills: %w", err)
	}
	experience, err = json.Marshal(c.Experience)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode experience: %w", err)
	}
	education, err = json.Marshal(c.Education)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode education: %w", err)
	}
	return skills, experience, education, nil
}

var _ CandidatesRepo = (*PGRepo)(nil)
