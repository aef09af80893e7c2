package llm

import "fmt"

const resumeExtractionSchema = `{
  "fullName": string | null,
  "email": string | null,
  "phone": string | null,
  "location": string | null,
  "headline": string | null,
  "atsScore": number | null,
  "skills": string[],
  "experience": { "company": string | null, "title": string | null, "startDate": string | null, "endDate": string | null, "location": string | null, "description": string | null }[],
  "education": { "institution": string | null, "degree": string | null, "fieldOfStudy": string | null, "startDate": string | null, "endDate": string | null }[],
  "yearsOfExperience": number | null
}`

// ResumeExtractionRequest builds the deterministic extraction prompt for a
// raw resume text.
func ResumeExtractionRequest(rawText string) CompletionRequest {
	user := fmt.Sprintf(`You are an expert resume parser. Extract structured data from the resume text provided.
Return ONLY valid JSON matching this exact shape:
%s
If data is missing, use null for fields or empty arrays as appropriate.
Return an "atsScore" between 0 and 100 representing how ATS-friendly or complete the resume appears based on standard parsing signals.
Resume text is enclosed between <resume> tags.
<resume>
%s
</resume>`, resumeExtractionSchema, rawText)

	return CompletionRequest{
		System:      "You extract structured JSON resume data and must respond with valid JSON only.",
		User:        user,
		Temperature: 0,
		JSONOnly:    true,
	}
}

// MatchScoreRequest builds the scoring prompt for a job description and a
// candidate's resume text.
func MatchScoreRequest(jobDescription, candidateText string) CompletionRequest {
	user := fmt.Sprintf(`Job Description:
%s

Candidate Resume:
%s

Return ONLY JSON in this exact shape: {"score": number, "explanation": string}. Score must be 0-100.`, jobDescription, candidateText)

	return CompletionRequest{
		System:      "You are an ATS and recruiter. Evaluate candidate fit for the role and respond ONLY with JSON.",
		User:        user,
		Temperature: 0.2,
		JSONOnly:    true,
	}
}
