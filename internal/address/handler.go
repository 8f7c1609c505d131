// File: internal/address/handler.go
package address

import (
	"context"
	"errors"

	"company_portal_backend/internal/common"
	"company_portal_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for address session handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new address session handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for address-editing sessions. All
// routes require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	sessions := router.Group("/profile/address-sessions", authMW)
	{
		sessions.POST("", h.startSession)
		sessions.POST("/:sessionID/search-selections", h.searchSelect)
		sessions.POST("/:sessionID/map-clicks", h.mapClick)
		sessions.POST("/:sessionID/marker-drags", h.markerDrag)
		sessions.POST("/:sessionID/text-edits", h.textEdit)
		sessions.POST("/:sessionID/save", h.save)
		sessions.DELETE("/:sessionID", h.cancel)
	}
}

func (h *Handler) startSession(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req StartSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondBindingError(c, err)
			return
		}
	}
	if (req.DeviceLatitude == nil) != (req.DeviceLongitude == nil) {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Device coordinates must include both latitude and longitude."))
		return
	}

	session, err := h.service.StartSession(c.Request.Context(), identity.UID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Address session started.", session)
}

func (h *Handler) searchSelect(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req SearchSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	session, err := h.service.SearchSelect(c.Request.Context(), identity.UID, c.Param("sessionID"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Selection updated.", session)
}

func (h *Handler) mapClick(c *gin.Context) {
	h.applyCoordinates(c, h.service.MapClick)
}

func (h *Handler) markerDrag(c *gin.Context) {
	h.applyCoordinates(c, h.service.MarkerDrag)
}

func (h *Handler) textEdit(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	session, err := h.service.TextEdit(c.Request.Context(), identity.UID, c.Param("sessionID"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Selection cleared.", session)
}

func (h *Handler) save(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	result, err := h.service.Save(c.Request.Context(), identity.UID, c.Param("sessionID"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Address saved successfully.", result)
}

func (h *Handler) cancel(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	if err := h.service.Cancel(c.Request.Context(), identity.UID, c.Param("sessionID")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) applyCoordinates(c *gin.Context, op func(ctx context.Context, userID, sessionID string, req CoordinateRequest) (*SessionResponse, error)) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req CoordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	session, err := op(c.Request.Context(), identity.UID, c.Param("sessionID"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Selection updated.", session)
}

// respondBindingError maps tag failures to the field->message validation
// envelope and everything else (malformed JSON, wrong types) to a plain
// bad-request.
func (h *Handler) respondBindingError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
		return
	}
	common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
}
