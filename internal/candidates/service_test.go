package candidates

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recruit-backend/internal/llm"
	"recruit-backend/internal/resume"
)

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// confidentResume is long and multi-line enough to clear the extraction
// quality gate.
func confidentResume() string {
	return strings.Join([]string{
		"Jane Doe",
		"Senior Software Engineer with a decade of experience building backend systems.",
		"Skills",
		"Go, PostgreSQL, Kubernetes, AWS, Terraform, distributed systems design",
		"Experience",
		"Acme Corp, Senior Engineer, 2018-2024: built the ingestion platform.",
		"Education",
		"MIT, BSc Computer Science",
	}, "\n")
}

func newTestService(client llm.Client) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	svc := &Service{
		Repo:   repo,
		Parser: resume.NewParser(client),
	}
	return svc, repo
}

func TestUploadResumeSuccess(t *testing.T) {
	stub := &stubLLM{response: `{"fullName":"Jane Doe","skills":["Go"," go ","SQL"],"atsScore":87.4,"yearsOfExperience":9.6}`}
	svc, repo := newTestService(stub)

	result, err := svc.UploadResume(context.Background(), "user-1", "resume.txt", "text/plain", []byte(confidentResume()))
	if err != nil {
		t.Fatalf("UploadResume: %v", err)
	}
	if result.Outcome != OutcomeSuccess {
		t.Fatalf("outcome = %v, want success", result.Outcome)
	}

	cand := result.Candidate
	if cand.ParseStatus != ParseStatusSuccess {
		t.Fatalf("parseStatus = %s", cand.ParseStatus)
	}
	if cand.ParseError != nil {
		t.Fatalf("expected nil parseError, got %q", *cand.ParseError)
	}
	if cand.FullName == nil || *cand.FullName != "Jane Doe" {
		t.Fatalf("fullName = %v", cand.FullName)
	}
	if len(cand.Skills) != 2 {
		t.Fatalf("expected deduped skills, got %v", cand.Skills)
	}
	if cand.ATSScore == nil || *cand.ATSScore != 87 {
		t.Fatalf("atsScore = %v", cand.ATSScore)
	}
	if cand.YearsOfExperience == nil || *cand.YearsOfExperience != 9 {
		t.Fatalf("yearsOfExperience = %v", cand.YearsOfExperience)
	}
	if cand.RawText == nil {
		t.Fatalf("expected rawText persisted")
	}

	stored, err := repo.GetByID(context.Background(), "user-1", cand.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ParseStatus != ParseStatusSuccess {
		t.Fatalf("stored parseStatus = %s", stored.ParseStatus)
	}
}

func TestUploadResumeLowConfidenceSkipsParsing(t *testing.T) {
	stub := &stubLLM{response: `{}`}
	svc, _ := newTestService(stub)

	result, err := svc.UploadResume(context.Background(), "user-1", "resume.txt", "text/plain", []byte("Jane\nGo\n"))
	if err != nil {
		t.Fatalf("UploadResume: %v", err)
	}
	if result.Outcome != OutcomeLowConfidence {
		t.Fatalf("outcome = %v, want low confidence", result.Outcome)
	}
	if stub.calls != 0 {
		t.Fatalf("expected no LLM calls for low-confidence text, got %d", stub.calls)
	}
	cand := result.Candidate
	if cand.ParseStatus != ParseStatusFailed {
		t.Fatalf("parseStatus = %s", cand.ParseStatus)
	}
	if cand.ParseError == nil || !strings.Contains(*cand.ParseError, "scanned") {
		t.Fatalf("parseError = %v", cand.ParseError)
	}
	if cand.RawText == nil {
		t.Fatalf("expected salvaged rawText persisted")
	}
}

func TestUploadResumeExtractionFailurePersistsFailedRecord(t *testing.T) {
	stub := &stubLLM{}
	svc, repo := newTestService(stub)

	result, err := svc.UploadResume(context.Background(), "user-1", "scan.png", "image/png", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("UploadResume: %v", err)
	}
	if result.Outcome != OutcomeExtractionFailed {
		t.Fatalf("outcome = %v, want extraction failed", result.Outcome)
	}
	if stub.calls != 0 {
		t.Fatalf("expected no LLM calls, got %d", stub.calls)
	}
	cand := result.Candidate
	if cand.ParseStatus != ParseStatusFailed {
		t.Fatalf("parseStatus = %s", cand.ParseStatus)
	}
	if cand.ParseError == nil {
		t.Fatalf("expected parseError")
	}
	if cand.RawText != nil {
		t.Fatalf("expected nil rawText, got %q", *cand.RawText)
	}

	// The failed attempt is still auditable.
	if _, err := repo.GetByID(context.Background(), "user-1", cand.ID); err != nil {
		t.Fatalf("expected failed record persisted: %v", err)
	}
}

func TestUploadResumeFallsBackWhenAIFails(t *testing.T) {
	stub := &stubLLM{err: errors.New("rate limited")}
	svc, _ := newTestService(stub)

	result, err := svc.UploadResume(context.Background(), "user-1", "resume.txt", "text/plain", []byte(confidentResume()))
	if err != nil {
		t.Fatalf("UploadResume: %v", err)
	}
	if result.Outcome != OutcomeFallback {
		t.Fatalf("outcome = %v, want fallback", result.Outcome)
	}
	if result.Message == "" {
		t.Fatalf("expected fallback message")
	}

	cand := result.Candidate
	if cand.ParseStatus != ParseStatusFailed {
		t.Fatalf("parseStatus = %s", cand.ParseStatus)
	}
	if cand.ParseError == nil || !strings.Contains(*cand.ParseError, "rate limited") {
		t.Fatalf("parseError = %v", cand.ParseError)
	}
	if cand.FullName == nil || *cand.FullName != "Jane Doe" {
		t.Fatalf("fallback fullName = %v", cand.FullName)
	}
	if len(cand.Skills) == 0 {
		t.Fatalf("expected heuristic skills, got none")
	}
	if cand.RawText == nil {
		t.Fatalf("expected rawText persisted for fallback")
	}
}

func TestUploadResumeFallsBackWhenNotConfigured(t *testing.T) {
	svc, _ := newTestService(llm.Disabled{})

	result, err := svc.UploadResume(context.Background(), "user-1", "resume.txt", "text/plain", []byte(confidentResume()))
	if err != nil {
		t.Fatalf("UploadResume: %v", err)
	}
	if result.Outcome != OutcomeFallback {
		t.Fatalf("outcome = %v, want fallback", result.Outcome)
	}
	if result.Candidate.ParseError == nil || !strings.Contains(*result.Candidate.ParseError, "not configured") {
		t.Fatalf("parseError = %v", result.Candidate.ParseError)
	}
}

func TestCreateRequiresFullName(t *testing.T) {
	svc, _ := newTestService(llm.Disabled{})

	_, err := svc.Create(context.Background(), "user-1", Candidate{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	name := "Alex Smith"
	cand, err := svc.Create(context.Background(), "user-1", Candidate{FullName: &name})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cand.ID == "" || cand.ParseStatus != ParseStatusPending {
		t.Fatalf("unexpected candidate: %+v", cand)
	}
}
