package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skinsano-backend/internal/shared/server/middleware"
	"skinsano-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.createAnalysis)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

type createAnalysisRequest struct {
	Symptoms   string `json:"symptoms"`
	ImageCount int    `json:"imageCount"`
	Tier       string `json:"tier"`
}

func (h *Handler) createAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	analysis, err := h.Svc.Submit(c.Request.Context(), SubmitInput{
		UserID:     userID,
		Symptoms:   req.Symptoms,
		ImageCount: req.ImageCount,
		Tier:       req.Tier,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSymptoms):
			respond.Error(c, http.StatusBadRequest, "invalid_symptoms", "Please describe your symptoms in at least 20 characters.", []map[string]string{
				{"field": "symptoms", "issue": "too_short"},
			})
		case errors.Is(err, ErrLimitReached):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "You've reached your free scan limit. Upgrade to premium to continue.", []map[string]string{
				{"field": "usage", "issue": "limit_reached"},
			})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to complete analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, analysis)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return
	}

	analysis, err := h.Svc.Get(c.Request.Context(), analysisID, middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, analysis)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
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

	analyses, err := h.Svc.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"analyses": analyses})
}
