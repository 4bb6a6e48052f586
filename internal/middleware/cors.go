package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows the admin console, served from its own origin during
// development, to call the API. The cashier identity headers must be listed
// or the browser strips them from sale requests.
func CORS() gin.HandlerFunc {
	const (
		allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		allowHeaders = "Content-Type, X-Request-ID, X-Cashier-Name, X-Cashier-Role"
	)
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		h.Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
