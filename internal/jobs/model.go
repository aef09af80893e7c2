package jobs

import "time"

// Job statuses.
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// Job is a posting owned by a recruiter.
type Job struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Seniority        string    `json:"seniority"`
	SalaryMin        *int      `json:"salaryMin"`
	SalaryMax        *int      `json:"salaryMax"`
	Description      string    `json:"description"`
	RequiredSkills   []string  `json:"requiredSkills"`
	NiceToHaveSkills []string  `json:"niceToHaveSkills"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}
