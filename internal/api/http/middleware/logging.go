package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/studyprofile-server/internal/logger"
)

// RequestIDHeader carries the request ID in and out of the server.
const RequestIDHeader = "X-Request-ID"

// Logging logs HTTP requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request and
// echoes a request ID, generating one when the client sent none.
func (l *Logging) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		log := l.logger.With("request_id", requestID)

		log.Info("HTTP request started",
			"method", c.Request.Method,
			"path", c.Request.URL.Path)

		c.Next()

		status := c.Writer.Status()
		log.Info("HTTP request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"status", status)

		if status >= 500 {
			log.Error("HTTP request failed",
				"path", c.Request.URL.Path,
				"errors", c.Errors.String(),
				"status", status)
		}
	}
}
