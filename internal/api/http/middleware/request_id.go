package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillfolio/skillfolio-web/internal/logging"
)

const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware ensures every request has a stable request ID.
// - Reads X-Request-Id header if present
// - Otherwise generates a new one
// - Stores it in the Gin context and the request context
// - Echoes it back in response header X-Request-Id
// - Logs request details (method, path, status, latency)
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" {
			rid = newRequestID()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), rid))
		c.Writer.Header().Set(RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		log.Printf(
			"[req] id=%s method=%s path=%s status=%d latency=%s",
			rid,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

func newRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}
	// fallback (should be rare)
	return time.Now().Format("20060102T150405.000000000")
}
