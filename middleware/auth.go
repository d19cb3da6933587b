package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "user_id"

// TokenVerifier verifies a bearer token and returns the user id it
// carries. Implemented by the logic layer's TokenManager.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// RequireAuth gates protected routes. A missing or malformed
// Authorization header aborts with 401; a token that fails verification
// (bad signature, expired) aborts with 403. On success the user id is
// stored in the gin context for the handler.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		const bearerPrefix = "Bearer "
		if len(authHeader) <= len(bearerPrefix) || authHeader[:len(bearerPrefix)] != bearerPrefix {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		userID, err := tokens.Verify(authHeader[len(bearerPrefix):])
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Token verification failed")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id stored by RequireAuth.
// It is only meaningful inside handlers behind that middleware.
func UserID(c *gin.Context) int64 {
	v, _ := c.Get(userIDKey)
	id, _ := v.(int64)
	return id
}
