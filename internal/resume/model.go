package resume

// ParsedResume is the canonical structured resume shape produced by the AI
// parser, the heuristic fallback, and consumed by the normalizer. Numeric
// fields are pointers so a missing value survives the JSON round-trip as nil
// rather than zero; after Normalize they are whole-valued.
type ParsedResume struct {
	FullName          *string      `json:"fullName"`
	Email             *string      `json:"email"`
	Phone             *string      `json:"phone"`
	Location          *string      `json:"location"`
	Headline          *string      `json:"headline"`
	ATSScore          *float64     `json:"atsScore"`
	Skills            []string     `json:"skills"`
	Experience        []Experience `json:"experience"`
	Education         []Education  `json:"education"`
	YearsOfExperience *float64     `json:"yearsOfExperience"`
}

// Experience is a single work history entry.
type Experience struct {
	Company     *string `json:"company"`
	Title       *string `json:"title"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// Education is a single education entry.
type Education struct {
	Institution  *string `json:"institution"`
	Degree       *string `json:"degree"`
	FieldOfStudy *string `json:"fieldOfStudy"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
}

// Empty returns a ParsedResume with no data and empty collections, used when
// persisting a failed upload.
func Empty() ParsedResume {
	return ParsedResume{
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
	}
}

func strPtr(s string) *string { return &s }
