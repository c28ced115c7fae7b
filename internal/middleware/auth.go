package middleware

import (
	"net/http"
	"strings"

	"github.com/axis-meridian-dev/Luber-development/internal/auth"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		identity, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			c.Abort()
			return
		}

		// Attach caller identity to request context
		c.Set("userID", identity.UserID)
		c.Set("userEmail", identity.Email)
		c.Set("userRole", string(identity.Role))
		c.Next()
	}
}

// UserID pulls the authenticated caller out of the gin context.
func UserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// UserRole pulls the caller's role out of the gin context.
func UserRole(c *gin.Context) (auth.Role, bool) {
	val, exists := c.Get("userRole")
	if !exists {
		return "", false
	}
	role, ok := val.(string)
	return auth.Role(role), ok
}
