package middleware

import (
	"net/http"
	"strings"

	"servicehub/models"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrincipalKey is the gin context key holding the authenticated models.Principal.
const PrincipalKey = "principal"

// JWTAuthMiddleware verifies the bearer token issued by the identity service
// and stores the caller's principal in the context.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		principal, err := utils.ParsePrincipal(tokenString, secret)
		if err != nil {
			zap.L().Debug("Rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set("userID", principal.UserID)
		c.Next()
	}
}

// GetPrincipal returns the principal stored by JWTAuthMiddleware.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
