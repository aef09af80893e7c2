package candidates

import "github.com/gin-gonic/gin"

func toResponse(c Candidate) gin.H {
	return gin.H{
		"id":                c.ID,
		"fullName":          c.FullName,
		"email":             c.Email,
		"phone":             c.Phone,
		"location":          c.Location,
		"headline":          c.Headline,
		"resumeUrl":         c.ResumeURL,
		"rawText":           c.RawText,
		"skills":            c.Skills,
		"experience":        c.Experience,
		"education":         c.Education,
		"yearsOfExperience": c.YearsOfExperience,
		"atsScore":          c.ATSScore,
		"parseStatus":       c.ParseStatus,
		"parseError":        c.ParseError,
		"createdAt":         c.CreatedAt,
	}
}
