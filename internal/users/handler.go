package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skinsano-backend/internal/shared/server/middleware"
	"skinsano-backend/internal/shared/server/respond"
)

// Handler exposes user profile endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.getMe)
}

func (h *Handler) getMe(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.JSON(c, http.StatusOK, gin.H{
			"id":      middleware.UserIDFromContext(c),
			"guest":   true,
			"premium": false,
		})
		return
	}

	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Token is valid but the profile was never persisted; synthesize
			// one from the claims so the client still gets an identity.
			respond.JSON(c, http.StatusOK, gin.H{
				"id":      userID,
				"email":   middleware.UserEmailFromContext(c),
				"guest":   false,
				"premium": false,
			})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch user", nil)
		return
	}

	respond.JSON(c, http.StatusOK, user)
}
