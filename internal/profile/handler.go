// File: internal/profile/handler.go
package profile

import (
	"company_portal_backend/internal/common"
	"company_portal_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for the profile dashboard.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("/profile", authMW, h.getDashboard)
}

func (h *Handler) getDashboard(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), identity)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", dashboard)
}
