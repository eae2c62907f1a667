package middleware

import (
	"net/http"

	"sokoni/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects authenticated requests whose role is not in the
// allowed set. It must run after JWTAuthMiddleware. Service-level checks
// still decide per-object ownership; this is only the coarse gate.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "This action is not available for your account type",
		})
	}
}
