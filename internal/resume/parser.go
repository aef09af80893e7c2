package resume

import (
	"context"
	"encoding/json"
	"fmt"

	"recruit-backend/internal/llm"
)

// Parser turns raw resume text into a ParsedResume via the configured LLM.
type Parser struct {
	client llm.Client
}

// NewParser constructs a Parser. A nil client behaves as not configured.
func NewParser(client llm.Client) *Parser {
	if client == nil {
		client = llm.Disabled{}
	}
	return &Parser{client: client}
}

// ParseWithAI asks the LLM to extract a structured resume from rawText.
// The response is stripped of code fences before decoding; a response that
// does not decode as the schema is an error, never a partial result.
func (p *Parser) ParseWithAI(ctx context.Context, rawText string) (ParsedResume, error) {
	out, err := p.client.Complete(ctx, llm.ResumeExtractionRequest(rawText))
	if err != nil {
		return ParsedResume{}, fmt.Errorf("ai resume parse: %w", err)
	}

	cleaned := llm.StripFences(out)
	if cleaned == "" {
		return ParsedResume{}, fmt.Errorf("ai resume parse: empty response")
	}

	var parsed ParsedResume
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return ParsedResume{}, fmt.Errorf("ai resume parse: invalid json: %w", err)
	}
	return parsed, nil
}
