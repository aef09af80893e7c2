package match

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"recruit-backend/internal/llm"
)

// Score is the model's verdict on one candidate for one job.
type Score struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Scorer evaluates candidate fit through the language-model client.
type Scorer struct {
	client llm.Client
}

// NewScorer constructs a Scorer.
func NewScorer(client llm.Client) *Scorer {
	if client == nil {
		client = llm.Disabled{}
	}
	return &Scorer{client: client}
}

// Score grades a candidate's resume text against a job description. An
// unparsable model response is an error, never a silent zero, so a failed
// run is attributable to the model.
func (s *Scorer) Score(ctx context.Context, jobDescription, candidateText string) (Score, error) {
	raw, err := s.client.Complete(ctx, llm.MatchScoreRequest(jobDescription, candidateText))
	if err != nil {
		return Score{}, fmt.Errorf("score match: %w", err)
	}

	cleaned := llm.StripFences(raw)

	var payload struct {
		Score       float64 `json:"score"`
		Explanation string  `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return Score{}, fmt.Errorf("parse match score response %q: %w", cleaned, err)
	}

	return Score{
		Score:       clampScore(payload.Score),
		Explanation: strings.TrimSpace(payload.Explanation),
	}, nil
}

func clampScore(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(v))))
}
