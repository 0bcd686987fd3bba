package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders hardening headers for an API that only serves JSON and file
// downloads.
//
// Calendars and schedules contain the duty plan of a named person, so every
// response is marked no-store: neither the browser nor an intermediate proxy
// may keep a copy of a generated .ics or .xlsx.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
