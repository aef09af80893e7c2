package candidates

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/extract"
	"recruit-backend/internal/resume"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/storage/object"
	"recruit-backend/internal/shared/telemetry"
)

// lowConfidenceAdvisory is persisted as the parse error when extracted text
// is too sparse to parse.
const lowConfidenceAdvisory = "Resume appears to be scanned or contains too little text. Please upload a text-based PDF or DOCX."

// fallbackSavedMessage is returned to the caller when the AI path failed but
// the heuristic extraction was persisted.
const fallbackSavedMessage = "AI parsing failed; saved fallback extraction instead."

// UploadOutcome classifies how an upload attempt ended. Every outcome,
// including the failures, has a persisted candidate behind it.
type UploadOutcome int

const (
	OutcomeSuccess UploadOutcome = iota
	OutcomeLowConfidence
	OutcomeExtractionFailed
	OutcomeFallback
	OutcomeBothFailed
)

// UploadResult is the outcome of one resume upload.
type UploadResult struct {
	Candidate Candidate
	Outcome   UploadOutcome
	Message   string
}

// Service contains business logic for candidates.
type Service struct {
	Repo   CandidatesRepo
	Store  object.ObjectStore
	Parser *resume.Parser
}

// UploadResume runs the ingestion chain for one uploaded file: extract,
// parse, normalize, persist. It always ends in a persisted candidate; the
// returned error is reserved for persistence failures.
func (s *Service) UploadResume(ctx context.Context, userId, fileName, mimeType string, data []byte) (UploadResult, error) {
	resumeURL := s.storeBlob(ctx, userId, fileName, data)

	extracted, err := extract.FromUpload(ctx, data, mimeType, fileName)
	if err != nil {
		metrics.IncResumeIngestFailed()
		cand, perr := s.persist(ctx, userId, resumeURL, "", resume.Empty(), ParseStatusFailed, strPtr(err.Error()))
		if perr != nil {
			return UploadResult{}, perr
		}
		return UploadResult{Candidate: cand, Outcome: OutcomeExtractionFailed, Message: err.Error()}, nil
	}

	if extracted.LowConfidence {
		metrics.IncResumeIngestFailed()
		cand, perr := s.persist(ctx, userId, resumeURL, extracted.Text, resume.Empty(), ParseStatusFailed, strPtr(lowConfidenceAdvisory))
		if perr != nil {
			return UploadResult{}, perr
		}
		return UploadResult{Candidate: cand, Outcome: OutcomeLowConfidence, Message: lowConfidenceAdvisory}, nil
	}

	parsed, err := s.Parser.ParseWithAI(ctx, extracted.Text)
	if err == nil {
		normalized := resume.Normalize(parsed, extracted.Text)
		cand, perr := s.persist(ctx, userId, resumeURL, extracted.Text, normalized, ParseStatusSuccess, nil)
		if perr != nil {
			return UploadResult{}, perr
		}
		metrics.IncResumeIngested()
		return UploadResult{Candidate: cand, Outcome: OutcomeSuccess}, nil
	}

	aiMsg := err.Error()
	telemetry.Warn("resume.parse.fallback", map[string]any{
		"user_id": userId,
		"reason":  aiMsg,
	})

	// The AI path failed: re-run extraction and bucket lines heuristically so
	// the upload still yields usable data.
	fallbackExtracted, fErr := extract.FromUpload(ctx, data, mimeType, fileName)
	if fErr != nil {
		metrics.IncResumeIngestFailed()
		combined := fmt.Sprintf("%s; fallback also failed: %s", aiMsg, fErr.Error())
		cand, perr := s.persist(ctx, userId, resumeURL, extracted.Text, resume.Empty(), ParseStatusFailed, strPtr(combined))
		if perr != nil {
			return UploadResult{}, perr
		}
		return UploadResult{Candidate: cand, Outcome: OutcomeBothFailed, Message: combined}, nil
	}

	rawText := resume.NormalizeRawText(fallbackExtracted.Text)
	fallbackParsed := resume.ParseHeuristically(rawText)
	normalized := resume.Normalize(fallbackParsed, rawText)
	cand, perr := s.persist(ctx, userId, resumeURL, rawText, normalized, ParseStatusFailed, strPtr(aiMsg))
	if perr != nil {
		return UploadResult{}, perr
	}
	metrics.IncResumeIngestFailed()
	return UploadResult{Candidate: cand, Outcome: OutcomeFallback, Message: fallbackSavedMessage}, nil
}

// storeBlob saves the raw upload and returns the locator to persist.
// Non-durable backends only hold the file for the request, so nothing is
// referenced from the candidate row and the blob is removed afterwards.
func (s *Service) storeBlob(ctx context.Context, userId, fileName string, data []byte) *string {
	if s.Store == nil {
		return nil
	}
	storageKey, _, _, err := s.Store.Save(ctx, userId, fileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Warn("resume.blob.save_failed", map[string]any{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil
	}
	if !s.Store.Durable() {
		go func() {
			cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.Store.Delete(cleanupCtx, storageKey); err != nil {
				telemetry.Warn("resume.blob.cleanup_failed", map[string]any{
					"storage_key": storageKey,
					"error":       err.Error(),
				})
			}
		}()
		return nil
	}
	return &storageKey
}

func (s *Service) persist(ctx context.Context, userId string, resumeURL *string, rawText string, parsed resume.ParsedResume, status string, parseError *string) (Candidate, error) {
	cand := Candidate{
		ID:          uuid.NewString(),
		UserID:      userId,
		ResumeURL:   resumeURL,
		ParseStatus: status,
		ParseError:  parseError,
		CreatedAt:   time.Now().UTC(),
	}
	applyParsed(&cand, parsed)
	if strings.TrimSpace(rawText) != "" {
		cand.RawText = &rawText
	}
	if err := s.Repo.Create(ctx, cand); err != nil {
		return Candidate{}, err
	}
	return cand, nil
}

// Create stores a manually entered candidate.
func (s *Service) Create(ctx context.Context, userId string, cand Candidate) (Candidate, error) {
	if cand.FullName == nil || strings.TrimSpace(*cand.FullName) == "" {
		return Candidate{}, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	cand.ID = uuid.NewString()
	cand.UserID = userId
	if cand.ParseStatus == "" {
		cand.ParseStatus = ParseStatusPending
	}
	cand.CreatedAt = time.Now().UTC()
	if cand.Skills == nil {
		cand.Skills = []string{}
	}
	if err := s.Repo.Create(ctx, cand); err != nil {
		return Candidate{}, err
	}
	return cand, nil
}

// Get returns a candidate owned by the user.
func (s *Service) Get(ctx context.Context, userId, candidateID string) (Candidate, error) {
	return s.Repo.GetByID(ctx, userId, candidateID)
}

// List returns the user's candidates, newest first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]Candidate, error) {
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

// Update applies caller-supplied changes to an existing candidate.
func (s *Service) Update(ctx context.Context, userId string, cand Candidate) (Candidate, error) {
	existing, err := s.Repo.GetByID(ctx, userId, cand.ID)
	if err != nil {
		return Candidate{}, err
	}
	merged := mergeCandidate(existing, cand)
	if err := s.Repo.Update(ctx, merged); err != nil {
		return Candidate{}, err
	}
	return merged, nil
}

// Delete removes a candidate owned by the user.
func (s *Service) Delete(ctx context.Context, userId, candidateID string) error {
	return s.Repo.Delete(ctx, userId, candidateID)
}

// mergeCandidate keeps existing values for fields the update left unset.
func mergeCandidate(existing, update Candidate) Candidate {
	out := existing
	if update.FullName != nil {
		out.FullName = update.FullName
	}
	if update.Email != nil {
		out.Email = update.Email
	}
	if update.Phone != nil {
		out.Phone = update.Phone
	}
	if update.Location != nil {
		out.Location = update.Location
	}
	if update.Headline != nil {
		out.Headline = update.Headline
	}
	if update.ResumeURL != nil {
		out.ResumeURL = update.ResumeURL
	}
	if update.RawText != nil {
		out.RawText = update.RawText
	}
	if update.Skills != nil {
		out.Skills = update.Skills
	}
	if update.Experience != nil {
		out.Experience = update.Experience
	}
	if update.Education != nil {
		out.Education = update.Education
	}
	if update.YearsOfExperience != nil {
		out.YearsOfExperience = update.YearsOfExperience
	}
	if update.ATSScore != nil {
		out.ATSScore = update.ATSScore
	}
	if update.ParseStatus != "" {
		out.ParseStatus = update.ParseStatus
	}
	if update.ParseError != nil {
		out.ParseError = update.ParseError
	}
	return out
}

func strPtr(s string) *string { return &s }
