package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sokoni/domain"
	"sokoni/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ctxUserIDKey = "userID"
	ctxRoleKey   = "role"
)

// JWTAuthMiddleware authenticates requests via Bearer token. The token's
// hash must match the one cached at signin; a missing entry means the
// session was revoked or expired, so the request is rejected even if the
// JWT itself is still within its expiry.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		ctx := context.Background()
		authCache := utils.GetAuthCacheClient()
		cachedHash, err := authCache.Get(ctx, utils.AuthCachePrefix+userID).Result()
		if err == redis.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session expired or revoked",
			})
			return
		}
		if err != nil {
			zap.L().Error("auth cache lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Authentication temporarily unavailable",
			})
			return
		}
		if cachedHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Token mismatch",
			})
			return
		}
		// Sliding expiry alongside the JWT's own.
		_ = authCache.Expire(ctx, utils.AuthCachePrefix+userID, 72*time.Hour).Err()

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxRoleKey, role)
		c.Next()
	}
}

// CurrentActor reads the authenticated identity set by JWTAuthMiddleware.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	userID := c.GetString(ctxUserIDKey)
	role := c.GetString(ctxRoleKey)
	if userID == "" || role == "" {
		return domain.Actor{}, false
	}
	return domain.Actor{ID: userID, Role: domain.Role(role)}, true
}
