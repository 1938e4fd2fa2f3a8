package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pdf-collab-api/internal/infrastructure/jwt"
)

const CtxUserID = "userID"

// AuthMiddleware is the single enforcement point for file routes: no
// handler behind it runs without a verified token, and the resolved
// user id is what scopes every downstream query.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "No token provided"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "No token provided"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "Invalid token"},
			)
			return
		}

		c.Set(CtxUserID, claims.UserID)

		c.Next()
	}
}
