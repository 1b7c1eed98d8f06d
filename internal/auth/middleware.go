package auth

import (
	"net/http"
	"strings"

	"cardboard/backend/internal/config"
	"cardboard/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// RequireAuth creates a gin middleware that rejects requests without a valid
// bearer token. When no password hash is configured the API is open and the
// middleware passes everything through.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.AppConfig.AuthEnabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or malformed"})
			return
		}

		if err := jwt.ValidateToken(parts[1]); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Next()
	}
}
