package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertScoreUsesAtomicConflictClause(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	score := 85
	link := Link{
		ID:          "link-1",
		JobID:       "job-1",
		CandidateID: "cand-1",
		Status:      StatusSourced,
		MatchScore:  &score,
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec(`(?s)INSERT INTO job_candidates.+ON CONFLICT \(job_id, candidate_id\)\s+DO UPDATE SET match_score = EXCLUDED\.match_score`).
		WithArgs(link.ID, link.JobID, link.CandidateID, link.Status, link.MatchScore, nil, link.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.UpsertScore(context.Background(), link); err != nil {
		t.Fatalf("UpsertScore: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE job_candidates").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), Link{JobID: "job-1", CandidateID: "missing", Status: "SCREENING"})
	if !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}
