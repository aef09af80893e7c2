package resume

import (
	"math"
	"strings"
	"unicode/utf8"
)

// maxNameLength caps a name derived from the first raw-text line, counted
// in runes so truncation never splits a character.
const maxNameLength = 80

// Normalize brings a parsed resume into canonical form: derived name, clean
// deduplicated skills, clamped whole-number scores. It is pure and
// idempotent, so normalizing an already-normalized record is a no-op.
func Normalize(parsed ParsedResume, rawText string) ParsedResume {
	out := parsed

	out.FullName = normalizeName(parsed.FullName, rawText)
	out.Email = cleanOptional(parsed.Email)
	out.Phone = cleanOptional(parsed.Phone)
	out.Location = cleanOptional(parsed.Location)
	out.Headline = cleanOptional(parsed.Headline)
	out.Skills = dedupeSkills(parsed.Skills)
	out.YearsOfExperience = normalizeYears(parsed.YearsOfExperience)
	out.ATSScore = normalizeATSScore(parsed.ATSScore)

	if out.Experience == nil {
		out.Experience = []Experience{}
	}
	if out.Education == nil {
		out.Education = []Education{}
	}
	return out
}

func normalizeName(name *string, rawText string) *string {
	if name != nil && strings.TrimSpace(*name) != "" {
		return name
	}
	for _, line := range strings.Split(rawText, "\n") {
		cleaned := strings.TrimSpace(line)
		if cleaned == "" {
			continue
		}
		if utf8.RuneCountInString(cleaned) > maxNameLength {
			runes := []rune(cleaned)
			cleaned = string(runes[:maxNameLength])
		}
		return strPtr(cleaned)
	}
	return nil
}

func cleanOptional(val *string) *string {
	if val == nil || strings.TrimSpace(*val) == "" {
		return nil
	}
	return val
}

// dedupeSkills trims entries, drops empties and removes duplicates,
// comparing case-insensitively while keeping the first-seen casing.
func dedupeSkills(skills []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		cleaned := strings.TrimSpace(skill)
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}

func normalizeYears(value *float64) *float64 {
	if value == nil {
		return nil
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	coerced := math.Max(0, math.Floor(v))
	return &coerced
}

func normalizeATSScore(value *float64) *float64 {
	if value == nil {
		return nil
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	coerced := math.Max(0, math.Min(100, math.Round(v)))
	return &coerced
}
