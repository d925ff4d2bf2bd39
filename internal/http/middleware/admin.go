package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKey guards the booking listing. An empty key leaves the routes open,
// which is only meant for local development.
func AdminKey(required string) gin.HandlerFunc {
	want := []byte(required)
	return func(c *gin.Context) {
		if required == "" {
			c.Next()
			return
		}
		if subtle.ConstantTimeCompare([]byte(presentedKey(c)), want) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid admin key",
				},
			})
			return
		}
		c.Next()
	}
}

func presentedKey(c *gin.Context) string {
	if key := c.GetHeader(AdminKeyHeader); key != "" {
		return key
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
