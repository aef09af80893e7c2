package candidates

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/resume"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches candidate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidates", h.create)
	rg.POST("/candidates/upload", h.upload)
	rg.GET("/candidates", h.list)
	rg.GET("/candidates/:id", h.get)
	rg.PUT("/candidates/:id", h.update)
	rg.DELETE("/candidates/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	result, err := h.Svc.UploadResume(c.Request.Context(), userID, fileHeader.Filename, mimeType, data)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store candidate", nil)
		return
	}

	c.Set("candidateId", result.Candidate.ID)

	switch result.Outcome {
	case OutcomeSuccess:
		respond.JSON(c, http.StatusCreated, toResponse(result.Candidate))
	case OutcomeLowConfidence:
		respond.JSON(c, http.StatusUnprocessableEntity, gin.H{
			"message":   result.Message,
			"candidate": toResponse(result.Candidate),
		})
	case OutcomeExtractionFailed:
		respond.JSON(c, http.StatusBadRequest, gin.H{
			"error":     result.Message,
			"candidate": toResponse(result.Candidate),
		})
	case OutcomeFallback:
		respond.JSON(c, http.StatusCreated, gin.H{
			"message":   result.Message,
			"candidate": toResponse(result.Candidate),
		})
	default:
		respond.JSON(c, http.StatusInternalServerError, gin.H{
			"error":     result.Message,
			"candidate": toResponse(result.Candidate),
		})
	}
}

type candidatePayload struct {
	FullName          *string             `json:"fullName"`
	Email             *string             `json:"email"`
	Phone             *string             `json:"phone"`
	Location          *string             `json:"location"`
	Headline          *string             `json:"headline"`
	ResumeURL         *string             `json:"resumeUrl"`
	RawText           *string             `json:"rawText"`
	Skills            []string            `json:"skills"`
	Experience        []resume.Experience `json:"experience"`
	Education         []resume.Education  `json:"education"`
	YearsOfExperience *int                `json:"yearsOfExperience"`
	ATSScore          *int                `json:"atsScore"`
	ParseStatus       string              `json:"parseStatus"`
	ParseError        *string             `json:"parseError"`
}

func (p candidatePayload) toModel() Candidate {
	return Candidate{
		FullName:          p.FullName,
		Email:             p.Email,
		Phone:             p.Phone,
		Location:          p.Location,
		Headline:          p.Headline,
		ResumeURL:         p.ResumeURL,
		RawText:           p.RawText,
		Skills:            p.Skills,
		Experience:        p.Experience,
		Education:         p.Education,
		YearsOfExperience: p.YearsOfExperience,
		ATSScore:          p.ATSScore,
		ParseStatus:       p.ParseStatus,
		ParseError:        p.ParseError,
	}
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req candidatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	cand, err := h.Svc.Create(c.Request.Context(), userID, req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create candidate", nil)
		}
		return
	}

	c.Set("candidateId", cand.ID)
	respond.JSON(c, http.StatusCreated, toResponse(cand))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	cands, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list candidates", nil)
		return
	}

	resp := make([]gin.H, 0, len(cands))
	for _, cand := range cands {
		resp = append(resp, toResponse(cand))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	cand, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch candidate", nil)
		}
		return
	}

	c.Set("candidateId", cand.ID)
	respond.JSON(c, http.StatusOK, toResponse(cand))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req candidatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	cand := req.toModel()
	cand.ID = c.Param("id")

	updated, err := h.Svc.Update(c.Request.Context(), userID, cand)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update candidate", nil)
		}
		return
	}

	c.Set("candidateId", updated.ID)
	respond.JSON(c, http.StatusOK, toResponse(updated))
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete candidate", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
