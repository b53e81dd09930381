package consultations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skinsano-backend/internal/shared/server/middleware"
	"skinsano-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the consultations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches consultation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/consultations", h.bookConsultation)
	rg.GET("/consultations", h.listConsultations)
	rg.GET("/consultations/:id", h.getConsultation)
	rg.POST("/consultations/:id/cancel", h.cancelConsultation)
}

type bookConsultationRequest struct {
	DoctorID      string `json:"doctorId"`
	Type          string `json:"type"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
}

func (h *Handler) bookConsultation(c *gin.Context) {
	var req bookConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	consultation, err := h.Svc.Book(c.Request.Context(), BookInput{
		UserID:        middleware.UserIDFromContext(c),
		DoctorID:      req.DoctorID,
		Type:          req.Type,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownDoctor):
			respond.Error(c, http.StatusNotFound, "not_found", "doctor not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "doctorId, scheduledDate and scheduledTime are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to book consultation", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, consultation)
}

func (h *Handler) listConsultations(c *gin.Context) {
	consultations, err := h.Svc.ListByUser(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list consultations", nil)
		return
	}
	if consultations == nil {
		consultations = []Consultation{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"consultations": consultations})
}

func (h *Handler) getConsultation(c *gin.Context) {
	consultation, err := h.Svc.Get(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "consultation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch consultation", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, consultation)
}

func (h *Handler) cancelConsultation(c *gin.Context) {
	err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "consultation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to cancel consultation", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"status": StatusCancelled})
}
