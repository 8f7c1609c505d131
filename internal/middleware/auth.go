// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"company_portal_backend/internal/common"
	"company_portal_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// IdentityKey is the context key for storing the authenticated identity
	IdentityKey = "identity"
)

// AuthMiddleware creates a Gin middleware that verifies Firebase ID tokens.
func AuthMiddleware(backend shared.AuthBackend, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid", zap.String("header", authHeader))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		identity, err := backend.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("ID token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired session token."))
			return
		}

		c.Set(IdentityKey, identity)

		logger.Debug("User authenticated successfully",
			zap.String("uid", identity.UID),
			zap.String("provider", identity.SignInProvider),
		)

		c.Next()
	}
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin context.
// Returns nil when the request was not authenticated.
func GetIdentityFromContext(c *gin.Context) *shared.Identity {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, ok := val.(*shared.Identity)
	if !ok {
		return nil
	}
	return identity
}
