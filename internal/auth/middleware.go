package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	claimsKey   = "claims"
)

// Middleware rejects requests without a valid bearer token and stores the
// resolved Identity in the gin context for downstream handlers.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be Bearer {token}"})
			c.Abort()
			return
		}
		claims, err := m.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}
		c.Set(identityKey, Identity{ID: claims.UserID, Role: claims.Role})
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// IdentityFrom returns the caller resolved by Middleware, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
