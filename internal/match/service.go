package match

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/candidates"
	"recruit-backend/internal/jobs"
)

// LinkWithCandidate is a pipeline entry joined with its candidate record.
type LinkWithCandidate struct {
	Link
	Candidate candidates.Candidate `json:"candidate"`
}

// Service implements the job-candidate pipeline operations. Every operation
// verifies the caller owns the job before touching links.
type Service struct {
	Jobs       jobs.JobsRepo
	Candidates candidates.CandidatesRepo
	Links      LinksRepo
	Engine     *Engine
}

// NewService constructs a Service.
func NewService(jobsRepo jobs.JobsRepo, candidatesRepo candidates.CandidatesRepo, links LinksRepo, engine *Engine) *Service {
	return &Service{
		Jobs:       jobsRepo,
		Candidates: candidatesRepo,
		Links:      links,
		Engine:     engine,
	}
}

// LinkCandidate manually attaches a candidate to a job with no score.
func (s *Service) LinkCandidate(ctx context.Context, userId, jobID, candidateID string) (Link, error) {
	if _, err := s.Jobs.GetByID(ctx, userId, jobID); err != nil {
		return Link{}, err
	}
	if _, err := s.Candidates.GetByID(ctx, userId, candidateID); err != nil {
		return Link{}, err
	}

	link := Link{
		ID:          uuid.NewString(),
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      StatusSourced,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Links.Create(ctx, link); err != nil {
		return Link{}, err
	}
	return link, nil
}

// ListForJob returns the job's pipeline, newest first, with candidate
// records joined in.
func (s *Service) ListForJob(ctx context.Context, userId, jobID string) ([]LinkWithCandidate, error) {
	if _, err := s.Jobs.GetByID(ctx, userId, jobID); err != nil {
		return nil, err
	}

	links, err := s.Links.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	out := make([]LinkWithCandidate, 0, len(links))
	for _, l := range links {
		cand, err := s.Candidates.GetByID(ctx, userId, l.CandidateID)
		if err != nil {
			// The candidate may have been deleted out from under the link.
			continue
		}
		out = append(out, LinkWithCandidate{Link: l, Candidate: cand})
	}
	return out, nil
}

// UpdateLink moves a link through the pipeline and optionally adjusts its
// score or notes.
func (s *Service) UpdateLink(ctx context.Context, userId, jobID, candidateID, status string, matchScore *int, notes *string) (Link, error) {
	if strings.TrimSpace(status) == "" {
		return Link{}, ErrStatusRequired
	}
	if _, err := s.Jobs.GetByID(ctx, userId, jobID); err != nil {
		return Link{}, err
	}

	link, err := s.Links.GetByPair(ctx, jobID, candidateID)
	if err != nil {
		return Link{}, err
	}

	link.Status = strings.ToUpper(strings.TrimSpace(status))
	if matchScore != nil {
		link.MatchScore = matchScore
	}
	if notes != nil {
		link.Notes = notes
	}

	if err := s.Links.Update(ctx, link); err != nil {
		return Link{}, err
	}
	return link, nil
}

// Refresh re-runs the auto-match engine for a job.
func (s *Service) Refresh(ctx context.Context, userId, jobID string, opts Options) error {
	return s.Engine.Run(ctx, userId, jobID, opts)
}
