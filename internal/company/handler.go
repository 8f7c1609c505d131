// File: internal/company/handler.go
package company

import (
	"company_portal_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for company handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new company handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for company operations. The directory is
// public: the signup form needs it before any session exists.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	companyGroup := router.Group("/companies")
	{
		companyGroup.GET("", h.getAllCompanies)
	}
}

func (h *Handler) getAllCompanies(c *gin.Context) {
	companies, err := h.service.GetAllCompanies(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	companyResponses := make([]CompanyResponse, len(companies))
	for i, comp := range companies {
		companyResponses[i] = ToCompanyResponse(&comp)
	}
	common.RespondOK(c, "Companies retrieved successfully.", companyResponses)
}
