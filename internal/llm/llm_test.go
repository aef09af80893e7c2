package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestStripFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain json", in: `{"score": 1}`, want: `{"score": 1}`},
		{name: "json fence", in: "```json\n{\"score\": 1}\n```", want: `{"score": 1}`},
		{name: "bare fence", in: "```\n{\"score\": 1}\n```", want: `{"score": 1}`},
		{name: "surrounding whitespace", in: "  ```json\n{}\n```  ", want: `{}`},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripFences(tt.in); got != tt.want {
				t.Fatalf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDisabledReturnsErrNotConfigured(t *testing.T) {
	t.Parallel()

	_, err := Disabled{}.Complete(context.Background(), CompletionRequest{User: "hi"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestResumeExtractionRequestIsDeterministic(t *testing.T) {
	t.Parallel()

	req := ResumeExtractionRequest("Jane Doe\nGo developer")
	if req.Temperature != 0 {
		t.Fatalf("expected temperature 0, got %v", req.Temperature)
	}
	if !req.JSONOnly {
		t.Fatalf("expected JSONOnly")
	}
	if !strings.Contains(req.User, "<resume>\nJane Doe\nGo developer\n</resume>") {
		t.Fatalf("expected resume text inside tags:\n%s", req.User)
	}
	if !strings.Contains(req.User, `"atsScore"`) {
		t.Fatalf("expected schema in prompt")
	}
}

func TestMatchScoreRequestIncludesBothDocuments(t *testing.T) {
	t.Parallel()

	req := MatchScoreRequest("Senior Go engineer", "10 years of Go")
	if req.Temperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", req.Temperature)
	}
	if !strings.Contains(req.User, "Senior Go engineer") || !strings.Contains(req.User, "10 years of Go") {
		t.Fatalf("expected job and candidate text in prompt:\n%s", req.User)
	}
	if !strings.Contains(req.User, `{"score": number, "explanation": string}`) {
		t.Fatalf("expected response shape in prompt")
	}
}
