package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/jobportal-app/utils"
)

const RequestIDHeader = "X-Request-ID"

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"status":     status,
			"latency":    latency.String(),
			"client_ip":  c.ClientIP(),
			"path":       path,
		}
		if id, ok := CurrentIdentity(c); ok {
			fields["user_id"] = id.UserID
		}
		utils.InfoLogger.WithFields(fields).Info("request")
	}
}
