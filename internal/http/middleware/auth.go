package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"travelbook/internal/domain"
)

const userContextKey = "auth_user"

// Auth validates Bearer tokens issued by the identity provider (HS256,
// shared secret) and stores the caller's identity in the gin context.
// This service never issues tokens itself.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		rc := domain.RequestContext{UserID: domain.ID(int64(userID))}
		if email, ok := claims["email"].(string); ok {
			rc.Email = email
		}
		if role, ok := claims["role"].(string); ok {
			rc.Role = role
		}

		c.Set(userContextKey, rc)
		c.Next()
	}
}

// GetUser returns the authenticated caller; ok is false on
// unauthenticated routes.
func GetUser(c *gin.Context) (domain.RequestContext, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}
