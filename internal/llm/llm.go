package llm

import (
	"context"
	"errors"
	"strings"
)

// Client abstracts LLM providers for resume parsing, match scoring and
// recruiter content generation.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest captures a single chat completion call.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	// JSONOnly asks the provider to constrain output to a JSON object.
	JSONOnly bool
}

// ErrNotConfigured is returned when no provider is wired.
var ErrNotConfigured = errors.New("llm provider not configured")

// Disabled is the client used when no provider is configured. Callers are
// expected to fall back to heuristic paths on ErrNotConfigured.
type Disabled struct{}

// Complete returns ErrNotConfigured.
func (Disabled) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}

// StripFences removes markdown code fences that models sometimes wrap
// around JSON output.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

var _ Client = Disabled{}
