package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/session"
)

// Audit logs successful mutations with the acting admin. The console
// has no database, so the audit trail is the structured log stream.
func Audit(logger *zap.Logger, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		fields := []zap.Field{
			zap.String("action", action),
			zap.String("resource", resource),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("ip", c.ClientIP()),
		}
		if value, ok := c.Get(ContextSessionKey); ok {
			sess := value.(*session.Session)
			fields = append(fields, zap.Int("user_id", sess.User.ID), zap.String("user_email", sess.User.Email))
		}
		logger.Info("audit", fields...)
	}
}
