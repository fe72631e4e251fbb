package middleware

import (
	"net/http"

	"servana/models"

	"github.com/gin-gonic/gin"
)

// RequireRole aborts the request unless the authenticated actor holds one of
// the given roles. Admins pass every gate.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authenticated actor"})
			return
		}
		if actor.Role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this operation"})
	}
}
