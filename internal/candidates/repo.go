package candidates

import "context"

// CandidatesRepo defines persistence operations for candidates.
type CandidatesRepo interface {
	Create(ctx context.Context, c Candidate) error
	GetByID(ctx context.Context, userId, candidateID string) (Candidate, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]Candidate, error)
	// ListScorable returns candidates with raw resume text, newest first,
	// capped at limit. This is the pool the match engine scores from.
	ListScorable(ctx context.Context, userId string, limit int) ([]Candidate, error)
	Update(ctx context.Context, c Candidate) error
	Delete(ctx context.Context, userId, candidateID string) error
}
