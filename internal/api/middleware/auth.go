// server/internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"gestor-frete-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate and read by the handlers.
const (
	CtxAccountID  = "account_id"
	CtxRole       = "account_role"
	CtxDriverID   = "account_driver_id"
	CtxClientName = "account_client_name"
)

// Authenticate validates the bearer token and stores the claims in the
// request context.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := auth.ParseJWT(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(CtxAccountID, claims.AccountID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxDriverID, claims.DriverID)
		c.Set(CtxClientName, claims.ClientName)

		c.Next()
	}
}

// Authorize is a middleware factory restricting a group to the given
// portal roles. A token scoped to one portal never opens another.
func Authorize(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get(CtxRole)
		if !exists {
			// Should not happen when Authenticate runs first.
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Account role not found in context"})
			return
		}

		role, ok := roleInterface.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Account role has an invalid type"})
			return
		}

		for _, allowed := range allowedRoles {
			if allowed == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}
