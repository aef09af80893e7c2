package match

import (
	"context"
	"sort"
	"sync"
)

type pairKey struct {
	jobID       string
	candidateID string
}

// MemoryRepo is an in-memory implementation of LinksRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[pairKey]Link
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[pairKey]Link),
	}
}

// Create inserts a new link, failing when the pair already exists.
func (r *MemoryRepo) Create(ctx context.Context, l Link) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{l.JobID, l.CandidateID}
	if _, ok := r.data[key]; ok {
		return ErrAlreadyLinked
	}
	r.data[key] = l
	return nil
}

// UpsertScore inserts the link or refreshes the score of an existing one.
func (r *MemoryRepo) UpsertScore(ctx context.Context, l Link) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{l.JobID, l.CandidateID}
	if existing, ok := r.data[key]; ok {
		existing.MatchScore = l.MatchScore
		r.data[key] = existing
		return nil
	}
	r.data[key] = l
	return nil
}

// GetByPair returns the link for a (job, candidate) pair.
func (r *MemoryRepo) GetByPair(ctx context.Context, jobID, candidateID string) (Link, error) {
	if err := ctx.Err(); err != nil {
		return Link{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if l, ok := r.data[pairKey{jobID, candidateID}]; ok {
		return l, nil
	}
	return Link{}, ErrLinkNotFound
}

// ListByJob returns all links for a job, newest first.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Link{}
	for key, l := range r.data {
		if key.jobID == jobID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces a stored link.
func (r *MemoryRepo) Update(ctx context.Context, l Link) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{l.JobID, l.CandidateID}
	if _, ok := r.data[key]; !ok {
		return ErrLinkNotFound
	}
	r.data[key] = l
	return nil
}

var _ LinksRepo = (*MemoryRepo)(nil)
