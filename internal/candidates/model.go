package candidates

import (
	"time"

	"recruit-backend/internal/resume"
)

// Parse status values for an upload attempt.
const (
	ParseStatusPending = "PENDING"
	ParseStatusSuccess = "SUCCESS"
	ParseStatusFailed  = "FAILED"
)

// Candidate is a stored candidate profile. One row is created per upload
// attempt, successful or not, so failed uploads stay auditable.
type Candidate struct {
	ID                string
	UserID            string
	FullName          *string
	Email             *string
	Phone             *string
	Location          *string
	Headline          *string
	ResumeURL         *string
	RawText           *string
	Skills            []string
	Experience        []resume.Experience
	Education         []resume.Education
	YearsOfExperience *int
	ATSScore          *int
	ParseStatus       string
	ParseError        *string
	CreatedAt         time.Time
}

func applyParsed(c *Candidate, parsed resume.ParsedResume) {
	c.FullName = parsed.FullName
	c.Email = parsed.Email
	c.Phone = parsed.Phone
	c.Location = parsed.Location
	c.Headline = parsed.Headline
	c.Skills = parsed.Skills
	c.Experience = parsed.Experience
	c.Education = parsed.Education
	c.YearsOfExperience = wholeToInt(parsed.YearsOfExperience)
	c.ATSScore = wholeToInt(parsed.ATSScore)
}

// wholeToInt converts a normalized whole-valued float pointer to an int
// pointer for storage.
func wholeToInt(v *float64) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}
