package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"palcolivre/api/internal/service"
)

const (
	ContextUser   = "current_user"
	ContextClaims = "access_claims"
)

// Auth gates protected routes: missing credential is 401, a credential that
// fails the signature, expiry or session-row check is 403.
func Auth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		user, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "sessão inválida ou expirada"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "erro interno no servidor"})
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextClaims, *claims)

		c.Next()
	}
}
