package candidates

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of CandidatesRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Candidate // userId -> candidates
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Candidate),
	}
}

// Create stores a new candidate.
func (r *MemoryRepo) Create(ctx context.Context, c Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[c.UserID] = append(r.data[c.UserID], c)
	return nil
}

// GetByID returns a candidate by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, candidateID string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.data[userId] {
		if c.ID == candidateID {
			return c, nil
		}
	}
	return Candidate{}, ErrNotFound
}

// ListByUser returns candidates for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	userCands := r.data[userId]
	r.mu.RUnlock()

	if len(userCands) == 0 || offset >= len(userCands) {
		return []Candidate{}, nil
	}

	cands := sortedNewestFirst(userCands)

	end := len(cands)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return cands[offset:end], nil
}

// ListScorable returns candidates with raw text, newest first, capped at limit.
func (r *MemoryRepo) ListScorable(ctx context.Context, userId string, limit int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	userCands := r.data[userId]
	r.mu.RUnlock()

	out := []Candidate{}
	for _, c := range sortedNewestFirst(userCands) {
		if c.RawText == nil {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Update replaces a stored candidate.
func (r *MemoryRepo) Update(ctx context.Context, c Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cands := r.data[c.UserID]
	for i := range cands {
		if cands[i].ID == c.ID {
			cands[i] = c
			r.data[c.UserID] = cands
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a candidate.
func (r *MemoryRepo) Delete(ctx context.Context, userId, candidateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cands := r.data[userId]
	for i := range cands {
		if cands[i].ID == candidateID {
			r.data[userId] = append(cands[:i:i], cands[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func sortedNewestFirst(in []Candidate) []Candidate {
	out := make([]Candidate, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

var _ CandidatesRepo = (*MemoryRepo)(nil)
