package api

import (
	"time"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxRequestIDKey = "requestID"

// RequestID tags every request with a unique id, honors one supplied by the
// caller, and logs the request once it completes.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(constants.HeaderRequestID, requestID)
		c.Set(ctxRequestIDKey, requestID)

		c.Next()

		logging.Info("request completed", logging.Fields{
			constants.LogFieldRequestID: requestID,
			constants.LogFieldMethod:    c.Request.Method,
			constants.LogFieldPath:      c.Request.URL.Path,
			constants.LogFieldStatus:    c.Writer.Status(),
			constants.LogFieldDuration:  time.Since(start).Milliseconds(),
		})
	}
}
