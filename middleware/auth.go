package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/viniciusmf/gym-management-backend/config"
)

// AuthMiddleware handles JWT authentication and stores the operator identity
// in the request context
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		tokenStr := parts[1]
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		operatorIDFloat, ok := claims["operator_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "operator_id missing in token"})
			return
		}

		role, _ := claims["role"].(string)

		c.Set("operator_id", uint(operatorIDFloat))
		c.Set("operator_role", role)
		c.Set("claims", claims)

		c.Next()
	}
}

// OperatorIDFromContext returns the authenticated operator id, or nil for
// unauthenticated requests (audit entries tolerate a missing operator).
func OperatorIDFromContext(c *gin.Context) *uint {
	val, exists := c.Get("operator_id")
	if !exists {
		return nil
	}
	id, ok := val.(uint)
	if !ok {
		return nil
	}
	return &id
}
