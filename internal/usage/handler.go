package usage

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skinsano-backend/internal/shared/server/middleware"
	"skinsano-backend/internal/shared/server/respond"
)

// TierLookup resolves the plan tier of a user. Implemented by the users
// service; guests always resolve to the free tier.
type TierLookup interface {
	TierOf(ctx context.Context, userID string) (string, error)
}

// Handler exposes usage endpoints.
type Handler struct {
	Svc   *Service
	Tiers TierLookup
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, tiers TierLookup) *Handler {
	return &Handler{Svc: svc, Tiers: tiers}
}

// RegisterRoutes attaches usage routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.getUsage)
}

func (h *Handler) getUsage(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	tier := "free"
	if h.Tiers != nil && !middleware.IsGuestFromContext(c) {
		if resolved, err := h.Tiers.TierOf(c.Request.Context(), userID); err == nil {
			tier = resolved
		}
	}

	u, err := h.Svc.Summary(c.Request.Context(), userID, tier)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch usage", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, u)
}
