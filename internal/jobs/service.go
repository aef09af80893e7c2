package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/shared/telemetry"
)

const autoMatchTimeout = 5 * time.Minute

// AutoMatcher refreshes candidate matches for a job. The concrete engine is
// injected at wiring time so this package stays independent of it.
type AutoMatcher interface {
	AutoAttach(ctx context.Context, userId, jobID string) error
}

// Service implements job posting business logic.
type Service struct {
	Repo    JobsRepo
	Matcher AutoMatcher
}

// NewService constructs a Service.
func NewService(repo JobsRepo, matcher AutoMatcher) *Service {
	return &Service{Repo: repo, Matcher: matcher}
}

// Create validates and stores a new job, then kicks off candidate matching
// in the background so the pipeline is pre-populated for the new posting.
func (s *Service) Create(ctx context.Context, userId string, job Job) (Job, error) {
	if err := validateRequired(job); err != nil {
		return Job{}, err
	}

	status, err := normalizeStatus(job.Status)
	if err != nil {
		return Job{}, err
	}

	job.ID = uuid.NewString()
	job.UserID = userId
	job.Status = status
	job.CreatedAt = time.Now().UTC()
	if job.RequiredSkills == nil {
		job.RequiredSkills = []string{}
	}
	if job.NiceToHaveSkills == nil {
		job.NiceToHaveSkills = []string{}
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}

	if s.Matcher != nil {
		go func(userId, jobID string) {
			matchCtx, cancel := context.WithTimeout(context.Background(), autoMatchTimeout)
			defer cancel()
			if err := s.Matcher.AutoAttach(matchCtx, userId, jobID); err != nil {
				telemetry.Warn("jobs.automatch.failed", map[string]any{
					"user_id": userId,
					"job_id":  jobID,
					"reason":  err.Error(),
				})
			}
		}(userId, job.ID)
	}

	return job, nil
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, userId, jobID string) (Job, error) {
	return s.Repo.GetByID(ctx, userId, jobID)
}

// List returns the user's jobs, newest first.
func (s *Service) List(ctx context.Context, userId string) ([]Job, error) {
	return s.Repo.ListByUser(ctx, userId)
}

// Update applies a partial update to an existing job.
func (s *Service) Update(ctx context.Context, userId string, job Job) (Job, error) {
	existing, err := s.Repo.GetByID(ctx, userId, job.ID)
	if err != nil {
		return Job{}, err
	}

	merged, err := mergeJob(existing, job)
	if err != nil {
		return Job{}, err
	}

	if err := s.Repo.Update(ctx, merged); err != nil {
		return Job{}, err
	}
	return merged, nil
}

// Delete removes a job.
func (s *Service) Delete(ctx context.Context, userId, jobID string) error {
	return s.Repo.Delete(ctx, userId, jobID)
}

func validateRequired(job Job) error {
	missing := []string{}
	if strings.TrimSpace(job.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(job.Company) == "" {
		missing = append(missing, "company")
	}
	if strings.TrimSpace(job.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(job.Seniority) == "" {
		missing = append(missing, "seniority")
	}
	if strings.TrimSpace(job.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func normalizeStatus(status string) (string, error) {
	if strings.TrimSpace(status) == "" {
		return StatusOpen, nil
	}
	normalized := strings.ToUpper(strings.TrimSpace(status))
	if normalized != StatusOpen && normalized != StatusClosed {
		return "", ErrInvalidStatus
	}
	return normalized, nil
}

func mergeJob(existing, update Job) (Job, error) {
	if strings.TrimSpace(update.Title) != "" {
		existing.Title = update.Title
	}
	if strings.TrimSpace(update.Company) != "" {
		existing.Company = update.Company
	}
	if strings.TrimSpace(update.Location) != "" {
		existing.Location = update.Location
	}
	if strings.TrimSpace(update.Seniority) != "" {
		existing.Seniority = update.Seniority
	}
	if update.SalaryMin != nil {
		existing.SalaryMin = update.SalaryMin
	}
	if update.SalaryMax != nil {
		existing.SalaryMax = update.SalaryMax
	}
	if strings.TrimSpace(update.Description) != "" {
		existing.Description = update.Description
	}
	if update.RequiredSkills != nil {
		existing.RequiredSkills = update.RequiredSkills
	}
	if update.NiceToHaveSkills != nil {
		existing.NiceToHaveSkills = update.NiceToHaveSkills
	}
	if strings.TrimSpace(update.Status) != "" {
		status, err := normalizeStatus(update.Status)
		if err != nil {
			return Job{}, err
		}
		existing.Status = status
	}
	return existing, nil
}
