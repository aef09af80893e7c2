package jobs

import "context"

// JobsRepo defines persistence operations for job postings.
type JobsRepo interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, userId, jobID string) (Job, error)
	ListByUser(ctx context.Context, userId string) ([]Job, error)
	Update(ctx context.Context, j Job) error
	Delete(ctx context.Context, userId, jobID string) error
}
