package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SecurityHeaders stamps every response with the header set the SEU CAS
// gateway emits: a per-request id, cache suppression, and the usual
// transport hardening headers. Clients built against the real gateway
// sometimes key off these, so the emulator sends them on every route.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		h := c.Writer.Header()
		h.Set("requestid", requestID)
		h.Set("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		h.Set("Strict-Transport-Security", "max-age=31536000 ; includeSubDomains")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Content-Language", "en")

		c.Next()
	}
}

// RequestID returns the id assigned by SecurityHeaders, or an empty
// string when the middleware is not installed.
func RequestID(c *gin.Context) string {
	if v, ok := c.Get("request_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
