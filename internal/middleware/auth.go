package middleware

import (
	"github.com/gin-gonic/gin"
)

// DevelopmentAuthMiddleware is a simple auth middleware for development.
// It trusts the X-User-ID header and falls back to a fixed dev user so
// local requests always carry an identity.
func DevelopmentAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = "00000000-0000-0000-0000-000000000001" // Valid UUID for dev
		}

		// Set both camelCase and snake_case for compatibility
		c.Set("userId", userID)
		c.Set("user_id", userID)
		c.Next()
	}
}

// HeaderAuthMiddleware reads the identity headers set by the edge proxy.
// The proxy validates the JWT upstream; this service only consumes the
// resulting claims.
func HeaderAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("userId", userID)
			c.Set("user_id", userID)
		}
		if tenantID := c.GetHeader("X-Tenant-ID"); tenantID != "" {
			c.Set("tenantId", tenantID)
			c.Set("tenant_id", tenantID)
		}
		c.Next()
	}
}
