package middleware

import (
	"net/http"
	"strings"

	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates the request from a Bearer token and stores the user id
// in the gin context under "user_id".
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		userID, err := service.ParseJWT(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token. Please login again.",
			})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
