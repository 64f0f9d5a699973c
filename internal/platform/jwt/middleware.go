package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user_backend/internal/feature/auth/domain/entity"
)

// Context keys set by AuthRequired.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// AccessTokenVerifier validates bearer tokens.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (*entity.TokenClaims, error)
}

// AuthRequired returns a Gin middleware function that validates access tokens
// and restricts access to authenticated users only.
func AuthRequired(verifier AccessTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify signature, expiry and token type
		claims, err := verifier.VerifyAccessToken(tokenStr)
		if err != nil {
			slog.Debug("bearer token rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. Expose the identity to downstream handlers
		c.Set(ContextUserID, claims.UserID.String())
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
