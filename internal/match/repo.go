package match

import "context"

// LinksRepo defines persistence operations for job-candidate links.
type LinksRepo interface {
	// Create inserts a new link and fails with ErrAlreadyLinked when the
	// (jobId, candidateId) pair already exists.
	Create(ctx context.Context, l Link) error
	// UpsertScore inserts the link or, when the pair already exists, updates
	// its match score in place. The write is atomic so concurrent refresh
	// runs for the same job never produce duplicate links.
	UpsertScore(ctx context.Context, l Link) error
	GetByPair(ctx context.Context, jobID, candidateID string) (Link, error)
	ListByJob(ctx context.Context, jobID string) ([]Link, error)
	Update(ctx context.Context, l Link) error
}
