package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"recruit-backend/internal/candidates"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/llm"
)

// ScoreResult is an ad-hoc fit score for arbitrary job/candidate text.
type ScoreResult struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Service exposes recruiter-assist generation on top of the language-model
// client: drafting job descriptions, outreach messages and fit summaries.
type Service struct {
	client llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	if client == nil {
		client = llm.Disabled{}
	}
	return &Service{client: client}
}

// GenerateJobDescription drafts a full job description from a free-form
// prompt.
func (s *Service) GenerateJobDescription(ctx context.Context, prompt string) (string, error) {
	out, err := s.client.Complete(ctx, llm.CompletionRequest{
		System:      "You are an expert recruiter. Write clear, inclusive job descriptions.",
		User:        "Create a detailed job description based on this prompt:\n" + prompt,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ScoreCandidate grades free-form candidate text against free-form job text.
// Unlike the match engine's scorer this is advisory: an unparsable response
// degrades to a zero score carrying the raw text as explanation.
func (s *Service) ScoreCandidate(ctx context.Context, jobDescription, candidateText string) (ScoreResult, error) {
	raw, err := s.client.Complete(ctx, llm.CompletionRequest{
		System:      "You are an impartial technical recruiter. Score candidates from 0-100 and explain your reasoning in JSON.",
		User:        fmt.Sprintf("Job Description:\n%s\n\nCandidate Resume or Profile:\n%s\n\nReturn a JSON object: {\"score\": number, \"explanation\": string}.", jobDescription, candidateText),
		Temperature: 0.3,
		JSONOnly:    true,
	})
	if err != nil {
		return ScoreResult{}, err
	}

	cleaned := llm.StripFences(raw)
	var payload struct {
		Score       float64 `json:"score"`
		Explanation string  `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return ScoreResult{Score: 0, Explanation: strings.TrimSpace(raw)}, nil
	}
	return ScoreResult{Score: int(payload.Score), Explanation: payload.Explanation}, nil
}

// GenerateOutreach writes a short personalized outreach note for a
// candidate about a job.
func (s *Service) GenerateOutreach(ctx context.Context, job jobs.Job, cand candidates.Candidate) (string, error) {
	out, err := s.client.Complete(ctx, llm.CompletionRequest{
		System:      "You are a helpful recruiter crafting concise outreach messages. Be professional, friendly, and personalize the note based on the candidate profile.",
		User:        fmt.Sprintf("Job Details:\n%s\n\nCandidate Details:\n%s\n\nWrite a short outreach message inviting the candidate to discuss the role.", buildJobPrompt(job), buildCandidatePrompt(cand)),
		Temperature: 0.6,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// GenerateSummary writes a short fit summary for a candidate against a job.
func (s *Service) GenerateSummary(ctx context.Context, job jobs.Job, cand candidates.Candidate) (string, error) {
	out, err := s.client.Complete(ctx, llm.CompletionRequest{
		System:      "You summarize candidate fit concisely for recruiters. Provide a short paragraph highlighting alignment between the candidate and the role.",
		User:        fmt.Sprintf("Job Details:\n%s\n\nCandidate Details:\n%s\n\nProvide a concise summary of the candidate fit for this job.", buildJobPrompt(job), buildCandidatePrompt(cand)),
		Temperature: 0.5,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func buildJobPrompt(job jobs.Job) string {
	lines := []string{
		"Job Title: " + job.Title,
		"Company: " + job.Company,
		"Location: " + job.Location,
		"Seniority: " + job.Seniority,
		fmt.Sprintf("Salary Range: %s - %s", formatInt(job.SalaryMin), formatInt(job.SalaryMax)),
		"Description: " + job.Description,
		"Required Skills: " + formatList(job.RequiredSkills),
		"Nice To Have Skills: " + formatList(job.NiceToHaveSkills),
	}
	return strings.Join(lines, "\n")
}

func buildCandidatePrompt(cand candidates.Candidate) string {
	experience := make([]string, 0, len(cand.Experience))
	for _, e := range cand.Experience {
		experience = append(experience, describeOptional(e.Description))
	}
	education := make([]string, 0, len(cand.Education))
	for _, e := range cand.Education {
		education = append(education, describeOptional(e.Institution))
	}

	lines := []string{
		"Name: " + describeOptional(cand.FullName),
		"Location: " + orDefault(cand.Location, "Not specified"),
		"Headline: " + orDefault(cand.Headline, "Not provided"),
		"Skills: " + formatList(cand.Skills),
		"Experience: " + formatList(experience),
		"Education: " + formatList(education),
		"Email: " + orDefault(cand.Email, "Not provided"),
		"Phone: " + orDefault(cand.Phone, "Not provided"),
		"Years of Experience: " + formatIntOr(cand.YearsOfExperience, "Not provided"),
	}
	return strings.Join(lines, "\n")
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "Not specified"
	}
	return strings.Join(items, ", ")
}

func formatInt(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func formatIntOr(v *int, fallback string) string {
	if v == nil {
		return fallback
	}
	return strconv.Itoa(*v)
}

func orDefault(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return *v
}

func describeOptional(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
