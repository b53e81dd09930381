package progress

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skinsano-backend/internal/shared/server/middleware"
	"skinsano-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the progress service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches progress routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/progress", h.createEntry)
	rg.GET("/progress/:analysisId", h.listEntries)
}

type createEntryRequest struct {
	AnalysisID       string   `json:"analysisId"`
	Date             string   `json:"date"`
	Photos           []string `json:"photos"`
	SymptomsRating   int      `json:"symptomsRating"`
	Notes            string   `json:"notes"`
	ImprovementScore int      `json:"improvementScore"`
}

func (h *Handler) createEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	entry, err := h.Svc.Create(c.Request.Context(), CreateInput{
		UserID:           middleware.UserIDFromContext(c),
		AnalysisID:       req.AnalysisID,
		Date:             req.Date,
		Photos:           req.Photos,
		SymptomsRating:   req.SymptomsRating,
		Notes:            req.Notes,
		ImprovementScore: req.ImprovementScore,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "analysisId, date and ratings are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create progress entry", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, entry)
}

func (h *Handler) listEntries(c *gin.Context) {
	entries, err := h.Svc.ListByAnalysis(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("analysisId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list progress entries", nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"entries": entries})
}
