package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	headerUserID    = "X-User-ID"
	headerRequestID = "X-Request-Id"
	headerTraceID   = "X-Trace-Id"

	keyUserID    = "user_id"
	keyRequestID = "request_id"
)

func attachRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(keyRequestID, reqID)
		c.Writer.Header().Set(headerRequestID, reqID)
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Writer.Header().Set(headerTraceID, sc.TraceID().String())
		}
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", c.GetString(keyRequestID)),
		}
		if uid := c.GetString(keyUserID); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		switch {
		case status >= 500:
			logger.Error("http request", fields...)
		case status >= 400:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader(headerUserID))
		if uid == "" {
			abortError(c, 401, "missing_user", "the "+headerUserID+" header is required")
			return
		}
		c.Set(keyUserID, uid)
		c.Next()
	}
}

func userID(c *gin.Context) string { return c.GetString(keyUserID) }
