package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID makes sure every request carries an ID, generating one when the
// client did not send its own. Handlers and the access log pull it from the
// context so a failed extraction can be correlated across log lines.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger writes one access-log line per request, prefixed with the request
// ID in the same "[request_id]" form the handlers use for error logs.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		id, _ := c.Get("request_id")
		log.Printf("[%s] %s %s -> %d in %s",
			id,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// Recovery turns handler panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
