package middleware

import "github.com/gin-gonic/gin"

// ActivityRecorder receives one record per authenticated request.
// Implementations must not block the request.
type ActivityRecorder interface {
	Record(userID, action, ipAddress string)
}

// ActivityLogging returns a Gin middleware that records an activity
// entry (method + path) for every authenticated request. Recording is
// fire-and-forget: it runs after the handler and never fails a request.
func ActivityLogging(recorder ActivityRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		userID, exists := c.Get("userID")
		if !exists {
			return
		}
		id, ok := userID.(string)
		if !ok || id == "" {
			return
		}

		recorder.Record(id, c.Request.Method+" "+c.Request.URL.Path, c.ClientIP())
	}
}
