package match

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/candidates"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/shared/server/middleware"
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

// RegisterRoutes attaches pipeline routes to the router group. The job
// segment reuses the :id parameter so these routes co-exist with the job
// CRUD routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/candidates/:candidateId/link", h.link)
	rg.GET("/jobs/:id/candidates", h.list)
	rg.PUT("/jobs/:id/candidates/:candidateId/status", h.updateStatus)
	rg.POST("/jobs/:id/refresh-matches", h.refresh)
}

func (h *Handler) link(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("id")
	candidateID := c.Param("candidateId")

	link, err := h.Svc.LinkCandidate(c.Request.Context(), userID, jobID, candidateID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, candidates.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		case errors.Is(err, ErrAlreadyLinked):
			respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to link candidate to job", nil)
		}
		return
	}

	c.Set("jobId", jobID)
	c.Set("candidateId", candidateID)
	respond.JSON(c, http.StatusCreated, link)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("id")

	links, err := h.Svc.ListForJob(c.Request.Context(), userID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job candidates", nil)
		}
		return
	}

	c.Set("jobId", jobID)
	respond.JSON(c, http.StatusOK, links)
}

type linkUpdatePayload struct {
	Status     string  `json:"status"`
	MatchScore *int    `json:"matchScore"`
	Notes      *string `json:"notes"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("id")
	candidateID := c.Param("candidateId")

	var req linkUpdatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	link, err := h.Svc.UpdateLink(c.Request.Context(), userID, jobID, candidateID, req.Status, req.MatchScore, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrStatusRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrLinkNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job candidate link not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update job candidate status", nil)
		}
		return
	}

	c.Set("jobId", jobID)
	c.Set("candidateId", candidateID)
	respond.JSON(c, http.StatusOK, link)
}

func (h *Handler) refresh(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("id")

	opts := Options{Limit: DefaultLimit, MinScore: DefaultMinScore}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			opts.Limit = parsed
		}
	}
	if v := c.Query("minScore"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			opts.MinScore = parsed
		}
	}

	if err := h.Svc.Refresh(c.Request.Context(), userID, jobID, opts); err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to refresh AI matches", nil)
		}
		return
	}

	c.Set("jobId", jobID)
	respond.JSON(c, http.StatusOK, gin.H{"message": "AI matches refreshed"})
}
