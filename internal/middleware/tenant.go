package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantMiddleware extracts and validates tenant information.
// SECURITY: No default tenant fallback - requests without tenant context
// are rejected.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetString("tenant_id")

		if tenantID == "" {
			tenantID = c.GetHeader("X-Tenant-ID")
		}

		// SECURITY: fail closed
		if tenantID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TENANT_REQUIRED",
					"message": "Tenant ID is required. Include X-Tenant-ID header.",
				},
			})
			c.Abort()
			return
		}

		// Set tenant ID in context for use by handlers (both keys for
		// compatibility)
		c.Set("tenantId", tenantID)
		c.Set("tenant_id", tenantID)
		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) string {
	if tid := c.GetString("tenant_id"); tid != "" {
		return tid
	}
	return c.GetString("tenantId")
}

// GetUserID retrieves the authenticated user ID from gin context
func GetUserID(c *gin.Context) string {
	if uid := c.GetString("user_id"); uid != "" {
		return uid
	}
	return c.GetString("userId")
}
