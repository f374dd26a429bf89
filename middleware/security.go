package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the response headers for the public share pages. The
// CSP is strict because shared handbooks render model-generated content.
func SecurityHeaders() func(c *gin.Context) {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}
