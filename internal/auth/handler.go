// File: internal/auth/handler.go
package auth

import (
	"errors"

	"company_portal_backend/internal/common"
	"company_portal_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", authMW, h.logout)
		authGroup.GET("/me", authMW, h.me)
	}
}

func (h *Handler) signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Signup: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	identity, tokens, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	response := gin.H{"user": ToIdentityResponse(identity)}
	if tokens != nil {
		response["token"] = tokens
	}
	common.RespondCreated(c, "Account created successfully.", response)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	identity, tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	response := gin.H{
		"user":  ToIdentityResponse(identity),
		"token": tokens,
	}
	common.RespondOK(c, "Login successful.", response)
}

func (h *Handler) logout(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	if err := h.service.Logout(c.Request.Context(), identity.UID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Signed out.", nil)
}

func (h *Handler) me(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	common.RespondOK(c, "Session identity retrieved.", ToIdentityResponse(identity))
}
