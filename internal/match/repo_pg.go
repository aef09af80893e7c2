package match

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements LinksRepo using Postgres. The job_candidates table has a
// unique constraint on (job_id, candidate_id).
type PGRepo struct {
	DB *sql.DB
}

const linkColumns = `id, job_id, candidate_id, status, match_score, notes, created_at`

// Create inserts a new link. A unique violation maps to ErrAlreadyLinked.
func (r *PGRepo) Create(ctx context.Context, l Link) error {
	const query = `
INSERT INTO job_candidates (id, job_id, candidate_id, status, match_score, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctx, query, l.ID, l.JobID, l.CandidateID, l.Status, l.MatchScore, l.Notes, l.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrAlreadyLinked
	}
	return err
}

// UpsertScore atomically inserts the link or refreshes the score of an
// existing one, keyed by (job_id, candidate_id).
func (r *PGRepo) UpsertScore(ctx context.Context, l Link) error {
	const query = `
INSERT INTO job_candidates (id, job_id, candidate_id, status, match_score, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (job_id, candidate_id)
DO UPDATE SET match_score = EXCLUDED.match_score`

	_, err := r.DB.ExecContext(ctx, query, l.ID, l.JobID, l.CandidateID, l.Status, l.MatchScore, l.Notes, l.CreatedAt)
	return err
}

// GetByPair fetches the link for a (job, candidate) pair.
func (r *PGRepo) GetByPair(ctx context.Context, jobID, candidateID string) (Link, error) {
	const query = `
SELECT ` + linkColumns + `
FROM job_candidates
WHERE job_id = $1 AND candidate_id = $2
LIMIT 1`

	var l Link
	err := r.DB.QueryRowContext(ctx, query, jobID, candidateID).Scan(
		&l.ID, &l.JobID, &l.CandidateID, &l.Status, &l.MatchScore, &l.Notes, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Link{}, ErrLinkNotFound
		}
		return Link{}, err
	}
	return l, nil
}

// ListByJob lists links for a job, newest first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Link, error) {
	const query = `
SELECT ` + linkColumns + `
FROM job_candidates
WHERE job_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Link
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.ID, &l.JobID, &l.CandidateID, &l.Status, &l.MatchScore, &l.Notes, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a link.
func (r *PGRepo) Update(ctx context.Context, l Link) error {
	const query = `
UPDATE job_candidates
SET status = $1,
    match_score = $2,
    notes = $3
WHERE job_id = $4 AND candidate_id = $5`

	res, err := r.DB.ExecContext(ctx, query, l.Status, l.MatchScore, l.Notes, l.JobID, l.CandidateID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// isUniqueViolation matches the Postgres unique_violation error code.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ LinksRepo = (*PGRepo)(nil)
