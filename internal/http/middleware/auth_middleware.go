package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// AuthMW guards routes with bearer token validation
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates the bearer auth middleware
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithJWT validates the Authorization header and stores the claims in
// the request context. Every validation failure is the same 401; the
// token service already refuses to say why.
func (m *AuthMW) WithJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.tokenSvc.Validate(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("phone", claims.Phone)
		c.Set("verified", claims.Verified)

		c.Next()
	}
}
