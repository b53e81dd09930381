package doctors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skinsano-backend/internal/shared/server/respond"
)

// Handler exposes the doctor directory.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches doctor routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/doctors", h.listDoctors)
	rg.GET("/doctors/:id", h.getDoctor)
	rg.GET("/doctors/:id/slots", h.getSlots)
}

func (h *Handler) listDoctors(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"doctors": List(c.Query("consultationType")),
	})
}

func (h *Handler) getDoctor(c *gin.Context) {
	doctor, ok := GetByID(c.Param("id"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "doctor not found", nil)
		return
	}
	respond.JSON(c, http.StatusOK, doctor)
}

func (h *Handler) getSlots(c *gin.Context) {
	doctorID := c.Param("id")
	if _, ok := GetByID(doctorID); !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "doctor not found", nil)
		return
	}

	date := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	slots := AvailableSlots(doctorID, date)
	if slots == nil {
		slots = []string{}
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"doctorId": doctorID,
		"date":     date.Format("2006-01-02"),
		"slots":    slots,
	})
}
