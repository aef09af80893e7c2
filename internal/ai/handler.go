package ai

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/candidates"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/llm"
	"recruit-backend/internal/resume"
	"recruit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches AI assist routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/generate-jd", h.generateJD)
	rg.POST("/ai/score-candidate", h.scoreCandidate)
	rg.POST("/ai/generate-outreach", h.generateOutreach)
	rg.POST("/ai/generate-summary", h.generateSummary)
}

func (h *Handler) generateJD(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "prompt is required", nil)
		return
	}

	jd, err := h.Svc.GenerateJobDescription(c.Request.Context(), req.Prompt)
	if err != nil {
		h.respondLLMError(c, err, "failed to generate job description")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"jobDescription": jd})
}

func (h *Handler) scoreCandidate(c *gin.Context) {
	var req struct {
		JobDescription string `json:"jobDescription"`
		CandidateText  string `json:"candidateText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.JobDescription) == "" || strings.TrimSpace(req.CandidateText) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobDescription and candidateText are required", nil)
		return
	}

	result, err := h.Svc.ScoreCandidate(c.Request.Context(), req.JobDescription, req.CandidateText)
	if err != nil {
		h.respondLLMError(c, err, "failed to score candidate")
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

type pairPayload struct {
	Job       jobs.Job `json:"job"`
	Candidate struct {
		FullName          *string             `json:"fullName"`
		Email             *string             `json:"email"`
		Phone             *string             `json:"phone"`
		Location          *string             `json:"location"`
		Headline          *string             `json:"headline"`
		Skills            []string            `json:"skills"`
		Experience        []resume.Experience `json:"experience"`
		Education         []resume.Education  `json:"education"`
		YearsOfExperience *int                `json:"yearsOfExperience"`
	} `json:"candidate"`
}

func (p pairPayload) validate() bool {
	if strings.TrimSpace(p.Job.Title) == "" ||
		strings.TrimSpace(p.Job.Company) == "" ||
		strings.TrimSpace(p.Job.Location) == "" ||
		strings.TrimSpace(p.Job.Seniority) == "" ||
		strings.TrimSpace(p.Job.Description) == "" {
		return false
	}
	return p.Candidate.FullName != nil && strings.TrimSpace(*p.Candidate.FullName) != ""
}

func (p pairPayload) toCandidate() candidates.Candidate {
	return candidates.Candidate{
		FullName:          p.Candidate.FullName,
		Email:             p.Candidate.Email,
		Phone:             p.Candidate.Phone,
		Location:          p.Candidate.Location,
		Headline:          p.Candidate.Headline,
		Skills:            p.Candidate.Skills,
		Experience:        p.Candidate.Experience,
		Education:         p.Candidate.Education,
		YearsOfExperience: p.Candidate.YearsOfExperience,
	}
}

func (h *Handler) generateOutreach(c *gin.Context) {
	var req pairPayload
	if err := c.ShouldBindJSON(&req); err != nil || !req.validate() {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job and candidate with required fields are needed", nil)
		return
	}

	message, err := h.Svc.GenerateOutreach(c.Request.Context(), req.Job, req.toCandidate())
	if err != nil {
		h.respondLLMError(c, err, "failed to generate outreach")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": message})
}

func (h *Handler) generateSummary(c *gin.Context) {
	var req pairPayload
	if err := c.ShouldBindJSON(&req); err != nil || !req.validate() {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job and candidate with required fields are needed", nil)
		return
	}

	summary, err := h.Svc.GenerateSummary(c.Request.Context(), req.Job, req.toCandidate())
	if err != nil {
		h.respondLLMError(c, err, "failed to generate summary")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"summary": summary})
}

func (h *Handler) respondLLMError(c *gin.Context, err error, fallbackMsg string) {
	if errors.Is(err, llm.ErrNotConfigured) {
		respond.Error(c, http.StatusServiceUnavailable, "ai_not_configured", "AI provider not configured", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", fallbackMsg, nil)
}
