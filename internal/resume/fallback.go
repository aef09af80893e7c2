package resume

import (
	"regexp"
	"strings"
)

// fallbackName is used when no plausible name line exists in the text.
const fallbackName = "Unknown Candidate"

var (
	reDocTitle      = regexp.MustCompile(`(?i)^(resume|curriculum vitae|cv)$`)
	reSkillsHdr     = regexp.MustCompile(`\bskills?\b`)
	reExperienceHdr = regexp.MustCompile(`experience|employment|work history`)
	reEducationHdr  = regexp.MustCompile(`education|academics|qualifications`)
)

type section int

const (
	sectionNone section = iota
	sectionSkills
	sectionExperience
	sectionEducation
)

// NormalizeRawText trims every line, collapses runs of blank lines to one,
// and trims the result.
func NormalizeRawText(text string) string {
	cleaned := strings.ReplaceAll(text, "\r", "")
	lines := strings.Split(cleaned, "\n")
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimSpace(line)
	}

	var kept []string
	for i, line := range trimmed {
		if line != "" || (i > 0 && trimmed[i-1] != "") {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// ParseHeuristically builds a ParsedResume from raw text without any external
// call. It never fails: worst case is a record with the fallback name and
// empty sections. Section detection is a single line scan with a current
// section state that switches on header keywords.
func ParseHeuristically(rawText string) ParsedResume {
	parsed := Empty()

	name := extractFullName(rawText)
	parsed.FullName = strPtr(name)

	current := sectionNone
	for _, line := range strings.Split(rawText, "\n") {
		lower := strings.ToLower(line)
		switch {
		case reSkillsHdr.MatchString(lower):
			current = sectionSkills
			continue
		case reExperienceHdr.MatchString(lower):
			current = sectionExperience
			continue
		case reEducationHdr.MatchString(lower):
			current = sectionEducation
			continue
		}

		cleaned := strings.TrimSpace(line)
		if cleaned == "" {
			continue
		}
		switch current {
		case sectionSkills:
			parsed.Skills = append(parsed.Skills, cleaned)
		case sectionExperience:
			parsed.Experience = append(parsed.Experience, Experience{Description: strPtr(cleaned)})
		case sectionEducation:
			parsed.Education = append(parsed.Education, Education{Institution: strPtr(cleaned)})
		}
	}

	return parsed
}

func extractFullName(rawText string) string {
	for _, line := range strings.Split(rawText, "\n") {
		cleaned := strings.TrimSpace(line)
		if cleaned == "" {
			continue
		}
		if reDocTitle.MatchString(cleaned) || len(cleaned) <= 2 {
			continue
		}
		return cleaned
	}
	return fallbackName
}
