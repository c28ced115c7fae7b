package middleware

import (
	"github.com/axis-meridian-dev/Luber-development/internal/auth"

	"github.com/gin-gonic/gin"
)

func RequireRole(allowedRoles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := UserRole(c)
		if !exists {
			c.AbortWithStatusJSON(403, gin.H{"error": "role missing"})
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(403, gin.H{"error": "forbidden"})
	}
}
