package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of JobsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Job // userId -> jobs
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Job),
	}
}

// Create stores a new job.
func (r *MemoryRepo) Create(ctx context.Context, j Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[j.UserID] = append(r.data[j.UserID], j)
	return nil
}

// GetByID returns a job by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, j := range r.data[userId] {
		if j.ID == jobID {
			return j, nil
		}
	}
	return Job{}, ErrNotFound
}

// ListByUser returns jobs for a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	userJobs := r.data[userId]
	r.mu.RUnlock()

	out := make([]Job, len(userJobs))
	copy(out, userJobs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces a stored job.
func (r *MemoryRepo) Update(ctx context.Context, j Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userJobs := r.data[j.UserID]
	for i := range userJobs {
		if userJobs[i].ID == j.ID {
			userJobs[i] = j
			r.data[j.UserID] = userJobs
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a job.
func (r *MemoryRepo) Delete(ctx context.Context, userId, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userJobs := r.data[userId]
	for i := range userJobs {
		if userJobs[i].ID == jobID {
			r.data[userId] = append(userJobs[:i:i], userJobs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ JobsRepo = (*MemoryRepo)(nil)
