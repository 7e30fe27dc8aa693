package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerHomeRoutes registers the liveness probe.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}

// actingUserID resolves the user recorded in audit fields. Authentication is
// handled upstream of this service; the gateway forwards the user in a
// header.
func actingUserID(c *gin.Context) string {
	if userID := c.GetHeader("X-User-ID"); userID != "" {
		return userID
	}
	return "SYSTEM"
}
