package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDHeader is set by the upstream gateway after it authenticates the
// request. Authentication itself happens there, not in this service.
const UserIDHeader = "X-User-ID"

// Identity requires a valid user id header on every request and exposes it
// to handlers under the "user_id" context key.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing " + UserIDHeader + " header"})
			c.Abort()
			return
		}
		if _, err := uuid.Parse(userID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid " + UserIDHeader + " header"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
