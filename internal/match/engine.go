package match

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"recruit-backend/internal/candidates"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/telemetry"
)

const (
	// DefaultLimit caps how many candidates get attached per run.
	DefaultLimit = 20
	// DefaultMinScore is the inclusive attachment threshold.
	DefaultMinScore = 50

	// maxPoolSize bounds LLM spend per run.
	maxPoolSize = 200
	// scoringConcurrency is the batch width; batches run sequentially.
	scoringConcurrency = 3
)

// Options tune one auto-attach run. Limit <= 0 falls back to DefaultLimit;
// MinScore < 0 falls back to DefaultMinScore (0 is honored and attaches
// everything that scored).
type Options struct {
	Limit    int
	MinScore int
}

// Engine scores a user's candidate pool against a job and upserts ranked
// job-candidate links.
type Engine struct {
	Jobs       jobs.JobsRepo
	Candidates candidates.CandidatesRepo
	Links      LinksRepo
	Scorer     *Scorer
}

// NewEngine constructs an Engine.
func NewEngine(jobsRepo jobs.JobsRepo, candidatesRepo candidates.CandidatesRepo, links LinksRepo, scorer *Scorer) *Engine {
	return &Engine{
		Jobs:       jobsRepo,
		Candidates: candidatesRepo,
		Links:      links,
		Scorer:     scorer,
	}
}

// AutoAttach runs the engine with default options. It satisfies
// jobs.AutoMatcher so new postings get their pipeline pre-populated.
func (e *Engine) AutoAttach(ctx context.Context, userId, jobID string) error {
	return e.Run(ctx, userId, jobID, Options{Limit: DefaultLimit, MinScore: DefaultMinScore})
}

type scoredCandidate struct {
	candidateID string
	score       int
	explanation string
}

// Run scores up to maxPoolSize of the user's candidates against the job
// description in sequential batches of scoringConcurrency, then filters,
// ranks and upserts the qualifying links. A scoring failure aborts the whole
// run; partial silently-dropped results would be worse than a retryable
// error.
func (e *Engine) Run(ctx context.Context, userId, jobID string, opts Options) error {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.MinScore < 0 {
		opts.MinScore = DefaultMinScore
	}

	metrics.IncMatchRunStarted()
	start := time.Now()

	job, err := e.Jobs.GetByID(ctx, userId, jobID)
	if err != nil {
		metrics.IncMatchRunFailed()
		return err
	}

	pool, err := e.Candidates.ListScorable(ctx, userId, maxPoolSize)
	if err != nil {
		metrics.IncMatchRunFailed()
		return fmt.Errorf("load candidate pool: %w", err)
	}
	if len(pool) == 0 {
		metrics.IncMatchRunCompleted()
		return nil
	}

	results := make([]scoredCandidate, len(pool))
	for i := 0; i < len(pool); i += scoringConcurrency {
		end := i + scoringConcurrency
		if end > len(pool) {
			end = len(pool)
		}

		g, gctx := errgroup.WithContext(ctx)
		for j := i; j < end; j++ {
			j := j
			cand := pool[j]
			g.Go(func() error {
				s, err := e.Scorer.Score(gctx, job.Description, *cand.RawText)
				if err != nil {
					return err
				}
				results[j] = scoredCandidate{
					candidateID: cand.ID,
					score:       s.Score,
					explanation: s.Explanation,
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			metrics.IncMatchRunFailed()
			return fmt.Errorf("score candidates: %w", err)
		}
	}

	qualifying := make([]scoredCandidate, 0, len(results))
	for _, r := range results {
		if r.score >= opts.MinScore {
			qualifying = append(qualifying, r)
		}
	}
	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].score > qualifying[j].score
	})
	if len(qualifying) > opts.Limit {
		qualifying = qualifying[:opts.Limit]
	}

	for _, r := range qualifying {
		score := r.score
		link := Link{
			ID:          uuid.NewString(),
			JobID:       jobID,
			CandidateID: r.candidateID,
			Status:      StatusSourced,
			MatchScore:  &score,
			CreatedAt:   time.Now().UTC(),
		}
		if err := e.Links.UpsertScore(ctx, link); err != nil {
			metrics.IncMatchRunFailed()
			return fmt.Errorf("upsert link: %w", err)
		}
	}

	elapsed := time.Since(start)
	metrics.IncMatchRunCompleted()
	metrics.ObserveMatchRunDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("match.run.completed", map[string]any{
		"user_id":     userId,
		"job_id":      jobID,
		"pool_size":   len(pool),
		"attached":    len(qualifying),
		"duration_ms": elapsed.Milliseconds(),
	})
	return nil
}

var _ jobs.AutoMatcher = (*Engine)(nil)
