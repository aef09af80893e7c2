package resume

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recruit-backend/internal/llm"
)

type stubLLM struct {
	response string
	err      error
	lastReq  llm.CompletionRequest
}

func (s *stubLLM) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestParseWithAIDecodesResponse(t *testing.T) {
	t.Parallel()

	stub := &stubLLM{response: `{"fullName":"Jane Doe","skills":["Go","SQL"],"atsScore":87,"yearsOfExperience":6}`}
	parser := NewParser(stub)

	parsed, err := parser.ParseWithAI(context.Background(), "Jane Doe\nGo engineer")
	if err != nil {
		t.Fatalf("ParseWithAI: %v", err)
	}
	if parsed.FullName == nil || *parsed.FullName != "Jane Doe" {
		t.Fatalf("fullName = %v", parsed.FullName)
	}
	if len(parsed.Skills) != 2 {
		t.Fatalf("skills = %v", parsed.Skills)
	}
	if parsed.ATSScore == nil || *parsed.ATSScore != 87 {
		t.Fatalf("atsScore = %v", parsed.ATSScore)
	}

	if stub.lastReq.Temperature != 0 || !stub.lastReq.JSONOnly {
		t.Fatalf("expected deterministic JSON request, got %+v", stub.lastReq)
	}
	if !strings.Contains(stub.lastReq.User, "Jane Doe\nGo engineer") {
		t.Fatalf("expected raw text in prompt")
	}
}

func TestParseWithAIStripsFences(t *testing.T) {
	t.Parallel()

	stub := &stubLLM{response: "```json\n{\"fullName\":\"Jane Doe\"}\n```"}
	parser := NewParser(stub)

	parsed, err := parser.ParseWithAI(context.Background(), "text")
	if err != nil {
		t.Fatalf("ParseWithAI: %v", err)
	}
	if parsed.FullName == nil || *parsed.FullName != "Jane Doe" {
		t.Fatalf("fullName = %v", parsed.FullName)
	}
}

func TestParseWithAIRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	stub := &stubLLM{response: "sorry, I cannot do that"}
	parser := NewParser(stub)

	if _, err := parser.ParseWithAI(context.Background(), "text"); err == nil {
		t.Fatalf("expected error for non-JSON response")
	}
}

func TestParseWithAIPropagatesNotConfigured(t *testing.T) {
	t.Parallel()

	parser := NewParser(nil)
	_, err := parser.ParseWithAI(context.Background(), "text")
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
