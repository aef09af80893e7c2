package match

import "time"

// StatusSourced is the pipeline stage assigned to freshly attached links.
// Later stages (SCREENING, INTERVIEW, OFFER, ...) are free-form and set by
// the recruiter through the update endpoint.
const StatusSourced = "SOURCED"

// Link associates a candidate with a job. The (JobID, CandidateID) pair is
// unique; rescoring updates the existing link in place.
type Link struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	CandidateID string    `json:"candidateId"`
	Status      string    `json:"status"`
	MatchScore  *int      `json:"matchScore"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}
