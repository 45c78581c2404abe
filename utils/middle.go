package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer JWT and sets user_id in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			Fail(c, http.StatusUnauthorized, "no autorizado")
			return
		}
		claims, err := VerifyToken(tokenParts[1])
		if err != nil {
			Fail(c, http.StatusUnauthorized, "no autorizado")
			return
		}
		c.Set("user_id", claims.UserId)
		c.Next()
	}
}
